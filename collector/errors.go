package collector

import "fmt"

// LoadErrorKind classifies why a trace directory failed to load.
type LoadErrorKind int

const (
	// ErrIO means the directory or a trace file could not be read.
	ErrIO LoadErrorKind = iota
	// ErrSchema means a record failed to parse against the expected columns.
	ErrSchema
	// ErrMissingHostname means a file's first record has no Extra hostname.
	ErrMissingHostname
	// ErrEmptyFile means a matched trace file contains no records.
	ErrEmptyFile
)

func (k LoadErrorKind) String() string {
	switch k {
	case ErrIO:
		return "io"
	case ErrSchema:
		return "schema"
	case ErrMissingHostname:
		return "missing-hostname"
	case ErrEmptyFile:
		return "empty-file"
	}
	return "unknown"
}

// LoadError is the single error type surfaced by Load. Any record failure
// aborts the whole load; there is no partial-dataset mode, so callers only
// ever see one of these.
type LoadError struct {
	Kind   LoadErrorKind
	Path   string // offending file, or the directory for ErrIO on the scan
	Record int    // 1-based data record number, 0 when not applicable
	Err    error  // underlying cause, may be nil
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Path)
	if e.Record > 0 {
		msg = fmt.Sprintf("%s, record %d", msg, e.Record)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func ioErr(path string, err error) *LoadError {
	return &LoadError{Kind: ErrIO, Path: path, Err: err}
}

func schemaErr(path string, record int, err error) *LoadError {
	return &LoadError{Kind: ErrSchema, Path: path, Record: record, Err: err}
}
