package store

import "fmt"

// ParseError reports a checklist file that exists but cannot be understood.
// The cycle that hit it must not write, so the file stays recoverable.
type ParseError struct {
	Path string // checklist file path
	Err  error  // underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse checklist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports an I/O failure while saving the checklist file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write checklist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// ValidationError is a single schema violation at a document path.
type ValidationError struct {
	Path string // dotted path, e.g. items[2].text
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
