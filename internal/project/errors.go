package project

import (
	"errors"
	"fmt"
)

// IOError reports a file-system failure: reading an input, discovering
// inputs, or writing an output.
type IOError struct {
	Op   string // "read", "scan", "mkdir", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is (or wraps) an IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
