package container

import (
	"errors"
	"strconv"
)

// ErrUndefinedKey is matched by every *UndefinedKeyError via errors.Is.
var ErrUndefinedKey = errors.New("container: undefined key")

// ErrNilProvider is returned when a nil Provider is registered.
var ErrNilProvider = errors.New("container: nil provider")

// UndefinedKeyError is returned when a name has no binding.
type UndefinedKeyError struct {
	Name string
}

// Error implements the error interface.
func (e *UndefinedKeyError) Error() string {
	// Example: container: undefined key "db"
	return "container: undefined key " + strconv.Quote(e.Name)
}

// Is reports whether target is ErrUndefinedKey.
func (e *UndefinedKeyError) Is(target error) bool {
	return target == ErrUndefinedKey
}

// WrongTypeError is returned by Resolve when the resolved value does not
// have the requested type.
type WrongTypeError struct {
	Name string
	Got  string
	Want string
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	// Example: container: "db" resolved to string, want *sql.DB
	return "container: " + strconv.Quote(e.Name) + " resolved to " + e.Got + ", want " + e.Want
}
