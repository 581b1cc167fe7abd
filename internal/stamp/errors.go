package stamp

import "fmt"

// UnsupportedFormatError is returned when a file's extension is not one of
// the three supported kinds. Discovery filters these out silently; it is only
// surfaced when a single-file target bypasses discovery.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported file type for %s — supported: .pdf, .docx, .xlsx", e.Path)
	}
	return fmt.Sprintf("unsupported file type %q — supported: .pdf, .docx, .xlsx", e.Ext)
}

// ReadError wraps a failure to open or parse a source document.
// In batch mode it is recorded per file and does not stop the run.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a failure to produce the destination document.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
