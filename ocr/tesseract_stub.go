//go:build !ocr

package ocr

import "context"

// Tesseract is the stub used when the binary was built without the ocr
// tag. All operations return ErrNotEnabled.
type Tesseract struct{}

var _ Engine = (*Tesseract)(nil)

// NewTesseract reports that local OCR support was not compiled in.
// Rebuild with -tags ocr to enable it.
func NewTesseract(languages string) (*Tesseract, error) {
	return nil, ErrNotEnabled
}

// Name returns "tesseract".
func (t *Tesseract) Name() string { return "tesseract" }

// Close is a no-op. Safe on a nil engine.
func (t *Tesseract) Close() error { return nil }

// Recognize returns ErrNotEnabled.
func (t *Tesseract) Recognize(ctx context.Context, in Input) (Result, error) {
	return Result{}, ErrNotEnabled
}
