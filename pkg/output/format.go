package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Format identifies an image file format
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat resolves a format name, falling back to the file extension of
// path when name is empty. PPM is the default.
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if name == "" {
			return FormatPPM, nil
		}
	}
	switch Format(strings.ToLower(name)) {
	case FormatPPM:
		return FormatPPM, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", name)
	}
}

// Write encodes a frame in the given format
func Write(w io.Writer, frame *renderer.Frame, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatPNG:
		return WritePNG(w, frame)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
