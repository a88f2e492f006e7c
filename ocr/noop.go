package ocr

import "context"

// Noop is an engine that recognizes nothing. It exercises the full
// pipeline (rasterization, downscaling, page iteration) without an OCR
// backend, which makes it useful for dry runs and tests.
type Noop struct{}

var _ Engine = Noop{}

// Name returns "noop".
func (Noop) Name() string { return "noop" }

// Recognize returns an empty result for every page.
func (Noop) Recognize(ctx context.Context, in Input) (Result, error) {
	return Result{}, ctx.Err()
}
