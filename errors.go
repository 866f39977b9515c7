package mgsreport

import "fmt"

// MalformedInputError reports an input table that is missing a required column
// or holds a value that cannot be parsed as the expected type.
type MalformedInputError struct {
	Source string
	Line   int // 1-based line in the decompressed input; 0 when not applicable
	Column string
	Err    error
}

func (e *MalformedInputError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if e.Column != "" {
		return fmt.Sprintf("malformed input %s: column %q: %v", loc, e.Column, e.Err)
	}

	return fmt.Sprintf("malformed input %s: %v", loc, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ExternalResourceError reports a failure to open, fetch or decompress an
// input. These are surfaced as-is and never retried.
type ExternalResourceError struct {
	Resource string
	Err      error
}

func (e *ExternalResourceError) Error() string {
	return fmt.Sprintf("external resource %s: %v", e.Resource, e.Err)
}

func (e *ExternalResourceError) Unwrap() error { return e.Err }
