//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes pages with a locally installed Tesseract engine
// via gosseract. It produces plain text without layout tags, so every
// page becomes a single residual segment downstream.
//
// Tesseract must be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type Tesseract struct {
	// mu serializes recognitions; a gosseract client holds one native
	// handle and is not safe for concurrent use.
	mu     sync.Mutex
	client *gosseract.Client
}

var _ Engine = (*Tesseract)(nil)

// NewTesseract creates the engine. Callers must Close it to release the
// native handle. languages is a "+"-separated list such as "eng+fra";
// empty keeps the Tesseract default.
func NewTesseract(languages string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if languages != "" {
		if err := client.SetLanguage(languages); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting OCR languages: %w", err)
		}
	}
	return &Tesseract{client: client}, nil
}

// Name returns "tesseract".
func (t *Tesseract) Name() string { return "tesseract" }

// Close releases the native Tesseract handle. Safe on a nil engine.
func (t *Tesseract) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}

// Recognize runs local OCR on the page raster. The prompt is ignored.
func (t *Tesseract) Recognize(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if in.Image == nil {
		return Result{}, fmt.Errorf("%s page %d: no raster to recognize", in.Name, in.PageIndex+1)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, in.Image); err != nil {
		return Result{}, fmt.Errorf("encoding page raster: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("setting OCR image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognizing page: %w", err)
	}
	return Result{Text: strings.TrimSpace(text)}, nil
}
