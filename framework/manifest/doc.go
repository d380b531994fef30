// Package manifest loads registry bindings from YAML or JSON files.
//
// A manifest lists bindings in the order they are registered:
//
//	expand_env: true
//	bindings:
//	  - name: db.host
//	    value: ${DB_HOST}
//	    tags: [config, db]
//	  - name: db.primary
//	    ref: db.host
//	    shared: true
//
// Entries with value become literals. Entries with ref become factories that
// resolve the referenced name when they are themselves resolved, so a ref may
// point at a binding registered later or by Go code.
package manifest
