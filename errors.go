package replus

import "fmt"

// BuildError wraps any failure while compiling one template, naming the
// owning pattern type. Registry construction stops at the first BuildError;
// a partially built engine is never returned.
type BuildError struct {
	Type     string
	Template string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("pattern build failed for type %q: %v", e.Type, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// NoSuchGroupError reports a runtime lookup by a group key that resolved to
// no captured group on a specific match. It is the only routine error of the
// result model: callers probing optional keys should use GroupsOf and check
// for emptiness instead.
type NoSuchGroupError struct {
	Key string
}

func (e *NoSuchGroupError) Error() string {
	return fmt.Sprintf("no such group %q", e.Key)
}
