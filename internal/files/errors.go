package files

import (
	"errors"
	"os"
)

// Filesystem errors.
var (
	// ErrEmptyName is returned when an operation is given no name.
	ErrEmptyName = errors.New("filename is empty")

	// ErrIsDirectory is returned when a file operation targets a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrInvalidDirectory is returned by SetCurrentDirectory for a path that
	// does not exist or is not a directory.
	ErrInvalidDirectory = errors.New("invalid directory path")
)

// Error records a failed filesystem operation. Its message is meant to be
// shown to the user, so it names the file as the user typed it rather than
// the resolved absolute path.
type Error struct {
	Op   string // create, delete, read, search, chdir
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return e.Name + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError strips the os-level path wrapper so the message does not repeat
// the absolute path.
func newError(op, name string, err error) *Error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		err = linkErr.Err
	}
	return &Error{Op: op, Name: name, Err: err}
}
