package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.0-flash"

// geminiPrompt replaces the vLLM grounding prompt. Hosted models do not
// emit DeepSeek layout tags, so ask for plain markdown instead.
const geminiPrompt = "Convert this document page to markdown. " +
	"Preserve headings, tables and formulas. Return only the markdown content, without code fences."

// Gemini recognizes pages with a hosted Google model.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ Engine = (*Gemini)(nil)

// NewGemini builds a Gemini-backed engine. An empty model selects
// gemini-2.0-flash.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini OCR engine requires an API key")
	}
	if model == "" {
		model = geminiDefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Name returns "gemini".
func (g *Gemini) Name() string { return "gemini" }

// Recognize sends the page as inline PNG bytes with a markdown
// conversion prompt and unwraps any code fences around the reply.
func (g *Gemini) Recognize(ctx context.Context, in Input) (Result, error) {
	if in.Image == nil {
		return Result{}, fmt.Errorf("%s page %d: no raster to recognize", in.Name, in.PageIndex+1)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, in.Image); err != nil {
		return Result{}, fmt.Errorf("encoding page raster: %w", err)
	}

	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: geminiInstruction(in.Prompt)},
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: buf.Bytes()}},
		},
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return Result{}, fmt.Errorf("calling gemini: %w", err)
	}
	return Result{Text: stripCodeFences(res.Text())}, nil
}

// geminiInstruction adapts a caller prompt for a hosted model. The vLLM
// <image> placeholder has no meaning there and is dropped.
func geminiInstruction(prompt string) string {
	if prompt == "" || prompt == DefaultPrompt {
		return geminiPrompt
	}
	return strings.TrimSpace(strings.ReplaceAll(prompt, "<image>", ""))
}

// stripCodeFences unwraps replies wrapped in ``` fences.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
