package conversion

import "fmt"

// NotFoundError reports that the source path does not exist. Detected before
// any handler runs.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// UnsupportedFormatError reports an extension with no registered handler. No
// best-effort generic conversion is attempted.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file format: %s has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported file format: .%s", e.Extension)
}

// ExtractionError reports that every strategy for a format failed. Attempts
// holds the per-strategy failures in the order they were tried.
type ExtractionError struct {
	Path     string
	Handler  string
	Attempts []error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (%s handler, %d strategies tried): %v",
		e.Path, e.Handler, len(e.Attempts), e.Attempts[len(e.Attempts)-1])
}

func (e *ExtractionError) Unwrap() error {
	return e.Attempts[len(e.Attempts)-1]
}

// WriteError reports that the converted output could not be written.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write output %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
