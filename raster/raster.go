// Package raster loads and prepares page images for recognition.
//
// PDF sources are rendered to one raster per page with the MuPDF CLI
// (mutool); bitmap sources are decoded directly. Page rasters feed both
// the OCR engine and image-region extraction, so PDFs render at a
// resolution high enough for cropping (200 DPI by default).
package raster

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// MaxSide is the default cap on the longest raster side before
// recognition.
const MaxSide = 2048

// Load decodes a bitmap page image. PNG, JPEG, BMP and TIFF are
// supported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Downscale caps the longest side of img at max pixels, preserving
// aspect ratio. Images already within the cap are returned unchanged.
func Downscale(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if max <= 0 || (w <= max && h <= max) {
		return img
	}

	var nw, nh int
	if w > h {
		nw = max
		nh = int(float64(h) * (float64(max) / float64(w)))
	} else {
		nh = max
		nw = int(float64(w) * (float64(max) / float64(h)))
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
