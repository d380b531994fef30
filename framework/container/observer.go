package container

import "time"

// Resolution describes one completed Get.
type Resolution struct {
	// Registry is the ID of the registry that served the call.
	Registry string
	Name     string
	Shared   bool
	// Cached is true when a populated shared slot answered the call.
	Cached   bool
	Err      error
	Duration time.Duration
}

// Observer is notified after every Get. It runs on the caller's goroutine
// and must not call back into the registry that notified it.
type Observer func(Resolution)
