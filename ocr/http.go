package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPConfig configures the vLLM sidecar engine.
type HTTPConfig struct {
	// Endpoint is the full URL of the inference route.
	Endpoint string

	// BaseSize and ImageSize are the DeepSeek-OCR preprocessing
	// dimensions forwarded to the server.
	BaseSize  int
	ImageSize int

	// CropMode enables server-side tiling of large pages.
	CropMode bool

	// Timeout bounds a single page recognition.
	Timeout time.Duration

	// Client overrides the HTTP client. When nil, one is built from
	// Timeout.
	Client *http.Client
}

// DefaultHTTPConfig returns the standard DeepSeek-OCR serving
// parameters for the given endpoint.
func DefaultHTTPConfig(endpoint string) HTTPConfig {
	return HTTPConfig{
		Endpoint:  endpoint,
		BaseSize:  1024,
		ImageSize: 640,
		CropMode:  true,
		Timeout:   2 * time.Minute,
	}
}

// HTTP sends page rasters to a vLLM server running DeepSeek-OCR.
type HTTP struct {
	cfg HTTPConfig
	hc  *http.Client
}

var _ Engine = (*HTTP)(nil)

// NewHTTP builds an engine targeting cfg.Endpoint. Zero-valued sizes
// and timeout fall back to the DefaultHTTPConfig values.
func NewHTTP(cfg HTTPConfig) (*HTTP, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("http OCR engine requires an endpoint")
	}
	def := DefaultHTTPConfig(cfg.Endpoint)
	if cfg.BaseSize <= 0 {
		cfg.BaseSize = def.BaseSize
	}
	if cfg.ImageSize <= 0 {
		cfg.ImageSize = def.ImageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTP{cfg: cfg, hc: hc}, nil
}

// Name returns "http".
func (h *HTTP) Name() string { return "http" }

type inferenceRequest struct {
	Prompt    string `json:"prompt"`
	ImageB64  string `json:"image_base64"`
	BaseSize  int    `json:"base_size"`
	ImageSize int    `json:"image_size"`
	CropMode  bool   `json:"crop_mode"`
}

type inferenceResponse struct {
	Text string `json:"text"`
}

// Recognize JPEG-encodes the page raster and posts it to the inference
// route.
func (h *HTTP) Recognize(ctx context.Context, in Input) (Result, error) {
	if in.Image == nil {
		return Result{}, fmt.Errorf("%s page %d: no raster to recognize", in.Name, in.PageIndex+1)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, in.Image, &jpeg.Options{Quality: 90}); err != nil {
		return Result{}, fmt.Errorf("encoding page raster: %w", err)
	}

	body, err := json.Marshal(inferenceRequest{
		Prompt:    in.prompt(),
		ImageB64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		BaseSize:  h.cfg.BaseSize,
		ImageSize: h.cfg.ImageSize,
		CropMode:  h.cfg.CropMode,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encoding inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.hc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("calling OCR server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Result{}, fmt.Errorf("OCR server returned %s: %s", resp.Status, strings.TrimSpace(string(slurp)))
	}

	var ir inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return Result{}, fmt.Errorf("decoding inference response: %w", err)
	}
	return Result{Text: ir.Text}, nil
}
