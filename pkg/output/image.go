package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

// FormatFromPath picks the encoding from the file extension. No extension means PNG.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return FormatPNG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatTIFF:
		return "image/tiff"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

// ToImage copies a row-major RGBA frame buffer into an image
func ToImage(width, height int, pixels []byte) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("frame buffer holds %d bytes, expected %d for %dx%d", len(pixels), width*height*4, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return img, nil
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
