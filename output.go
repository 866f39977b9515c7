package mgsreport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
)

// WriteOutput publishes data at path. The whole output is written to a
// temporary file next to path, which is then renamed over path, so a failed
// run leaves any previous output untouched. An empty path writes to stdout.
func WriteOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	path = ExpandHome(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pfx.Err(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return pfx.Err(err)
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure below; after a successful rename
	// this is a no-op.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pfx.Err(err)
	}
	if err := tmp.Close(); err != nil {
		return pfx.Err(err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return pfx.Err(err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// BuildOutput runs fill against an in-memory buffer and returns the bytes, so
// callers can finish every computation before anything is written.
func BuildOutput(fill func(w io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := fill(bw); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteTSVRow writes fields joined by tabs and terminated by a newline.
func WriteTSVRow(w io.Writer, fields ...string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := io.WriteString(w, "\t"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, field); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)

	return err
}
