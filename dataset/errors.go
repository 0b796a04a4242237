package dataset

import "fmt"

// FileAccessError reports that the input file could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports malformed input: bad CSV or a broken column contract.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot parse dataset: %v", e.Err)
	}
	return fmt.Sprintf("cannot parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LookupError reports a label outside the closed set of species.
type LookupError struct {
	Label string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown species %q", e.Label)
}
