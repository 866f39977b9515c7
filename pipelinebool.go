package mgsreport

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// PipelineBool is a nullable boolean column as the pipeline writes it
// (True/False). Empty cells are null.
type PipelineBool struct {
	null.Bool
}

// UnmarshalCSV satisfies gocsv.TypeUnmarshaller.
func (b *PipelineBool) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		b.Bool = null.Bool{}
		return nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.Bool = null.BoolFrom(v)

	return nil
}

// MarshalCSV satisfies gocsv.TypeMarshaller.
func (b PipelineBool) MarshalCSV() (string, error) {
	if !b.Valid {
		return "", nil
	}

	return FormatBool(b.Bool.Bool), nil
}

// True reports whether the value is present and true.
func (b PipelineBool) True() bool {
	return b.Valid && b.Bool.Bool
}
