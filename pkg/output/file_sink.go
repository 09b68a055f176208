package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSink rewrites an image file on every flush. The frame is encoded to a
// temporary file next to Path and renamed over it, so readers never see a
// partially written image.
type FileSink struct {
	Path   string
	Format Format
}

// NewFileSink creates a sink for path, choosing the format from its extension
func NewFileSink(path string) (*FileSink, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{Path: path, Format: format}, nil
}

// Flush implements renderer.FrameSink
func (s *FileSink) Flush(width, height int, pixels []byte) error {
	img, err := ToImage(width, height, pixels)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", s.Path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, img, s.Format); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}
	return nil
}
