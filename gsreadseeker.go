package smartchip

import (
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
	offset  int64
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
	s.offset += int64(n)

	return n, err
}

// Seek only supports rewinding or staying put. Objects cannot actually be
// seeked, so the current reader is dropped and a new range read starts at the
// requested offset on the next Read.
func (s *GSReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	default:
		return 0, fmt.Errorf("io.Seeker 'whence' value %d is not implemented", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("Cannot seek to negative offset %d", newOffset)
	}

	if err := s.Close(); err != nil {
		return 0, err
	}
	s.offset = newOffset

	return s.offset, nil
}

// Close releases the current range reader, if any.
func (s *GSReadSeekCloser) Close() error {
	if s.r == nil {
		return nil
	}

	err := s.r.Close()
	s.r = nil

	return err
}

// IsGoogleStorage reports whether path names a gs:// object.
func IsGoogleStorage(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// OpenInput opens a local file or, if a client is given, a gs://bucket/object
// path. Local paths starting with ~/ are expanded.
func OpenInput(ctx context.Context, path string, client *storage.Client) (ReadSeekCloser, error) {
	if IsGoogleStorage(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: a Google Storage client is required to read gs:// paths", path)
		}

		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 || pathParts[1] == "" {
			return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}

		handle := client.Bucket(pathParts[0]).Object(pathParts[1])

		// Fail now rather than on the first read if the object is missing
		if _, err := handle.Attrs(ctx); err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return &GSReadSeekCloser{
			ObjectHandle: handle,
			Context:      ctx,
		}, nil
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}
