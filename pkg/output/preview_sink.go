package output

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// PreviewFrame is a downsized PNG snapshot of the frame buffer
type PreviewFrame struct {
	Width     int
	Height    int
	ImageData string // base64 PNG
	Sequence  int    // 1-based flush number
}

// PreviewSink downsizes every flushed frame and hands it to OnFrame
type PreviewSink struct {
	MaxWidth int // Frames wider than this are scaled down, keeping the aspect ratio
	OnFrame  func(PreviewFrame) error

	sequence int
}

// NewPreviewSink creates a preview sink. maxWidth <= 0 keeps the full size.
func NewPreviewSink(maxWidth int, onFrame func(PreviewFrame) error) *PreviewSink {
	return &PreviewSink{MaxWidth: maxWidth, OnFrame: onFrame}
}

// Flush implements renderer.FrameSink
func (s *PreviewSink) Flush(width, height int, pixels []byte) error {
	img, err := ToImage(width, height, pixels)
	if err != nil {
		return err
	}

	var preview image.Image = img
	if s.MaxWidth > 0 && width > s.MaxWidth {
		// Height 0 preserves the aspect ratio
		preview = resize.Resize(uint(s.MaxWidth), 0, img, resize.Bilinear)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, preview); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}

	s.sequence++
	bounds := preview.Bounds()
	return s.OnFrame(PreviewFrame{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Sequence:  s.sequence,
	})
}
