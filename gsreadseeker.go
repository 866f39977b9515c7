package mgsreport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// Decorates a Google Storage object handle with io.Reader, io.Seeker and
// io.Closer. Derived from
// https://github.com/googleapis/google-cloud-go/issues/1124#issuecomment-419070541
type GSReadSeekCloser struct {
	*storage.ObjectHandle
	Context context.Context
	r       *storage.Reader
	offset  int64 // initial offset
	pos     int64 // current position (like 'seen' in storage.Reader)
}

func (s *GSReadSeekCloser) Read(buf []byte) (int, error) {
	var err error
	if s.r == nil {
		s.r, err = s.NewRangeReader(s.Context, s.offset, -1)
		if err != nil {
			return 0, err
		}
	}
	n, err := s.r.Read(buf)
	s.pos += int64(n)

	return n, err
}

// Seek only supports rewinding to an absolute offset. The open range reader is
// dropped and a new one is started from the offset on the next Read.
func (s *GSReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = s.offset + s.pos + offset
	default:
		return 0, fmt.Errorf("io.Seeker 'whence' value %d is not implemented", whence)
	}

	if s.r != nil {
		s.r.Close()
		s.r = nil
	}

	s.offset = offset
	s.pos = 0

	return s.offset, nil
}

func (s *GSReadSeekCloser) Close() error {
	if s.r != nil {
		err := s.r.Close()
		s.r = nil
		return err
	}

	return nil
}

// IsGoogleStoragePath reports whether path names a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// OpenSeeker opens a local file or, when client is set and path starts with
// gs://, a Google Storage object. The size of the underlying object is
// returned alongside the reader. Failures are reported as
// ExternalResourceError.
func OpenSeeker(path string, client *storage.Client) (ReadSeekCloser, int64, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, 0, &ExternalResourceError{Resource: path, Err: fmt.Errorf("no storage client was configured")}
		}

		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, 0, &ExternalResourceError{Resource: path, Err: fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)}
		}

		wrappedHandle := &GSReadSeekCloser{
			ObjectHandle: client.Bucket(pathParts[0]).Object(pathParts[1]),
			Context:      context.Background(),
		}

		// Make a hard call to get the filesize
		attrs, err := wrappedHandle.ObjectHandle.Attrs(wrappedHandle.Context)
		if err != nil {
			return nil, 0, &ExternalResourceError{Resource: path, Err: pfx.Err(err)}
		}

		return wrappedHandle, attrs.Size, nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, 0, &ExternalResourceError{Resource: path, Err: err}
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, &ExternalResourceError{Resource: path, Err: err}
	}

	return f, fstat.Size(), nil
}

// ReadInput reads the whole of a possibly compressed local or gs:// file into
// memory, decompressing it on the way.
func ReadInput(path string, client *storage.Client) ([]byte, error) {
	path = ResolveCompressed(path)

	f, size, err := OpenSeeker(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, dt, err := MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, &ExternalResourceError{Resource: path, Err: fmt.Errorf("opening %s stream: %w", dt, err)}
	}
	defer r.Close()

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := io.Copy(buf, r); err != nil {
		return nil, &ExternalResourceError{Resource: path, Err: fmt.Errorf("reading %s stream: %w", dt, err)}
	}

	return buf.Bytes(), nil
}

// ResolveCompressed returns path+".gz" when path itself does not exist locally
// but its gzipped sibling does. The pipeline ships most reports gzipped.
func ResolveCompressed(path string) string {
	if IsGoogleStoragePath(path) {
		return path
	}
	if _, err := os.Stat(ExpandHome(path)); err == nil || !os.IsNotExist(err) {
		return path
	}
	if _, err := os.Stat(ExpandHome(path + ".gz")); err == nil {
		return path + ".gz"
	}

	return path
}

// StorageClientFor opens a Google Storage client if any of paths is a gs://
// path, and returns a nil client otherwise.
func StorageClientFor(paths ...string) (*storage.Client, error) {
	for _, p := range paths {
		if IsGoogleStoragePath(p) {
			return storage.NewClient(context.Background())
		}
	}

	return nil, nil
}

// FindLocal resolves path like ResolveCompressed and reports whether the
// result exists on local disk.
func FindLocal(path string) (string, bool) {
	path = ResolveCompressed(path)
	if _, err := os.Stat(ExpandHome(path)); err != nil {
		return "", false
	}

	return path, true
}
