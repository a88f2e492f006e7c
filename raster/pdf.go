package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"rsc.io/pdf"
)

// DefaultDPI is the rendering resolution for PDF pages.
const DefaultDPI = 200

// ErrNoPages is returned when a PDF yields no page rasters.
var ErrNoPages = errors.New("no pages rendered from PDF")

var (
	mutoolOnce sync.Once
	mutoolBin  string
	mutoolErr  error
)

// mutool locates the MuPDF CLI. $MUPDF_BIN wins, then PATH.
func mutool() (string, error) {
	mutoolOnce.Do(func() {
		var candidates []string
		if env := strings.TrimSpace(os.Getenv("MUPDF_BIN")); env != "" {
			candidates = append(candidates, env)
		}
		exe := "mutool"
		if runtime.GOOS == "windows" {
			exe += ".exe"
		}
		candidates = append(candidates, exe)

		for _, c := range candidates {
			if p, err := exec.LookPath(c); err == nil {
				mutoolBin = p
				return
			}
		}
		mutoolErr = errors.New("mutool not found; install mupdf-tools or set $MUPDF_BIN")
	})
	return mutoolBin, mutoolErr
}

// PageCount reports the number of pages in a PDF without rendering it.
func PageCount(path string) (n int, err error) {
	// rsc.io/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading %s: %v", filepath.Base(path), r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("opening PDF: %w", err)
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return r.NumPage(), nil
}

// RasterizePDF renders every page of the PDF at the given DPI and
// returns one raster per page, in page order. Rendering shells out to
// mutool, so MuPDF must be installed. A dpi of zero or less selects
// DefaultDPI.
func RasterizePDF(ctx context.Context, path string, dpi int) ([]image.Image, error) {
	bin, err := mutool()
	if err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	dir, err := os.MkdirTemp("", "folio-raster-")
	if err != nil {
		return nil, fmt.Errorf("creating raster dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pattern := filepath.Join(dir, "page%d.png")
	cmd := exec.CommandContext(ctx, bin, "draw", "-F", "png", "-r", strconv.Itoa(dpi), "-o", pattern, path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("mutool draw: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var pages []image.Image
	for i := 1; ; i++ {
		name := filepath.Join(dir, fmt.Sprintf("page%d.png", i))
		f, err := os.Open(name)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opening rendered page %d: %w", i, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding rendered page %d: %w", i, err)
		}
		pages = append(pages, img)
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}
