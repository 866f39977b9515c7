package mgsreport

import (
	"encoding/csv"
	"io"

	"cloud.google.com/go/storage"
	"github.com/gocarina/gocsv"
)

// UnmarshalTable decodes an in-memory delimited table into out, a pointer to a
// slice of structs with csv tags. Columns named in required must be present in
// the header; other tagged columns are optional.
func UnmarshalTable(source string, data []byte, out interface{}, required ...string) error {
	t, err := NewTable(source, data)
	if err != nil {
		return err
	}
	if err := t.Require(required...); err != nil {
		return err
	}

	// Tell gocsv to use the detected delimiter
	delim := t.Comma
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.LazyQuotes = true
		return r
	})

	if err := gocsv.UnmarshalBytes(data, out); err != nil {
		return &MalformedInputError{Source: source, Err: err}
	}

	return nil
}

// LoadTable reads path and decodes it with UnmarshalTable.
func LoadTable(path string, client *storage.Client, out interface{}, required ...string) error {
	data, err := ReadInput(path, client)
	if err != nil {
		return err
	}

	return UnmarshalTable(path, data, out, required...)
}
