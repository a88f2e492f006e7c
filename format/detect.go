// Package format provides input file format detection for the folio library.
package format

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when an input is neither a PDF nor a
// supported image type.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// BMP indicates a Windows bitmap image.
	BMP
	// TIFF indicates a TIFF image.
	TIFF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	default:
		return ""
	}
}

// IsImage reports whether the format is a single-page bitmap.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, BMP, TIFF:
		return true
	default:
		return false
	}
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".bmp":
		return BMP
	case ".tiff", ".tif":
		return TIFF
	default:
		return Unknown
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	switch {
	// PDF magic: %PDF
	case data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F':
		return PDF
	case len(data) >= len(pngMagic) && bytes.Equal(data[:len(pngMagic)], pngMagic):
		return PNG
	// JPEG SOI marker
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return JPEG
	case data[0] == 'B' && data[1] == 'M':
		return BMP
	// TIFF little-endian (II*\0) and big-endian (MM\0*) headers
	case data[0] == 'I' && data[1] == 'I' && data[2] == 0x2A && data[3] == 0x00:
		return TIFF
	case data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == 0x2A:
		return TIFF
	default:
		return Unknown
	}
}

// DetectFromReader inspects content to determine format. This is more
// reliable than extension-based detection.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, 8)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile determines the format of a file on disk, preferring magic
// bytes and falling back to the filename extension.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	detected, err := DetectFromReader(f)
	if err != nil {
		return Unknown, err
	}
	if detected != Unknown {
		return detected, nil
	}
	return Detect(path), nil
}
