package mgsreport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
)

// Table is a delimited text table with a header row, read fully into memory.
// Columns are looked up by header name.
type Table struct {
	Source  string
	Comma   rune
	Columns []string

	header map[string]int
	r      *csv.Reader
	line   int
}

// OpenTable reads path (local or gs://, optionally compressed) and parses its
// header.
func OpenTable(path string, client *storage.Client) (*Table, error) {
	data, err := ReadInput(path, client)
	if err != nil {
		return nil, err
	}

	return NewTable(path, data)
}

// NewTable parses the header of an in-memory table. source names the table in
// error messages.
func NewTable(source string, data []byte) (*Table, error) {
	delim := SniffDelimiter(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true

	t := &Table{
		Source: source,
		Comma:  delim,
		header: make(map[string]int),
		r:      r,
	}

	head, err := r.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Source: source, Err: fmt.Errorf("no header row")}
	} else if err != nil {
		return nil, &MalformedInputError{Source: source, Line: 1, Err: err}
	}
	t.line = 1

	for i, col := range head {
		col = strings.TrimSpace(col)
		t.Columns = append(t.Columns, col)
		t.header[col] = i
	}

	return t, nil
}

// SniffDelimiter picks tab when the header line holds one, which is what the
// pipeline writes, and otherwise falls back to DetermineDelimiter.
func SniffDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.IndexByte(firstLine, '\t') >= 0 {
		return '\t'
	}

	return DetermineDelimiter(bytes.NewReader(data))
}

// Require fails with a MalformedInputError naming the first missing column.
func (t *Table) Require(cols ...string) error {
	for _, col := range cols {
		if !t.Has(col) {
			return &MalformedInputError{Source: t.Source, Line: 1, Column: col, Err: fmt.Errorf("required column is missing")}
		}
	}

	return nil
}

func (t *Table) Has(col string) bool {
	_, ok := t.header[col]
	return ok
}

// Line is the 1-based line number of the row most recently returned by Next.
func (t *Table) Line() int {
	return t.line
}

// Next returns the next data row, or io.EOF once the table is exhausted.
func (t *Table) Next() ([]string, error) {
	row, err := t.r.Read()
	if err == io.EOF {
		return nil, err
	}
	t.line++
	if err != nil {
		return nil, &MalformedInputError{Source: t.Source, Line: t.line, Err: err}
	}

	return row, nil
}

// Get returns the value of col in row, or "" if the column is absent.
func (t *Table) Get(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}

	return row[i]
}

func (t *Table) Float(row []string, col string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.Get(row, col)), 64)
	if err != nil {
		return 0, t.malformed(col, err)
	}

	return v, nil
}

func (t *Table) Int(row []string, col string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(t.Get(row, col)))
	if err != nil {
		return 0, t.malformed(col, err)
	}

	return v, nil
}

// Bool accepts the spellings strconv.ParseBool does, which covers the
// True/False written by the pipeline.
func (t *Table) Bool(row []string, col string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(t.Get(row, col)))
	if err != nil {
		return false, t.malformed(col, err)
	}

	return v, nil
}

func (t *Table) malformed(col string, err error) error {
	return &MalformedInputError{Source: t.Source, Line: t.line, Column: col, Err: err}
}
