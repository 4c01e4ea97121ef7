package packager

import (
	"archive/zip"
	"io"
)

// ZipSink streams outputs into a single ZIP archive. Duplicate entry names
// are written as-is without renaming; extracting a duplicate yields the last
// entry written. A batch with zero successful items still finalizes to a
// valid, empty archive.
type ZipSink struct {
	zw *zip.Writer
}

func NewZipSink(w io.Writer) *ZipSink {
	return &ZipSink{zw: zip.NewWriter(w)}
}

func (s *ZipSink) Add(name string, data []byte) error {
	f, err := s.zw.Create(name)
	if err != nil {
		return &PackagingError{Err: err}
	}
	if _, err := f.Write(data); err != nil {
		return &PackagingError{Err: err}
	}
	return nil
}

// Close finalizes the archive; the central directory is written here, so an
// error means the whole archive is unusable.
func (s *ZipSink) Close() error {
	if err := s.zw.Close(); err != nil {
		return &PackagingError{Err: err}
	}
	return nil
}
