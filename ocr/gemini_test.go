package ocr

import (
	"context"
	"testing"
)

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", ""); err == nil {
		t.Error("NewGemini() with empty API key should fail")
	}
}

func TestGeminiName(t *testing.T) {
	g := &Gemini{model: geminiDefaultModel}
	if g.Name() != "gemini" {
		t.Errorf("Name() = %q, want %q", g.Name(), "gemini")
	}
}

func TestGeminiInstruction(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"empty uses markdown prompt", "", geminiPrompt},
		{"grounding default uses markdown prompt", DefaultPrompt, geminiPrompt},
		{"custom drops image placeholder", "<image>\nFree OCR.", "Free OCR."},
		{"plain custom passes through", "Transcribe the page.", "Transcribe the page."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geminiInstruction(tt.prompt); got != tt.want {
				t.Errorf("geminiInstruction(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "# Title\n\nBody", "# Title\n\nBody"},
		{"markdown fence", "```markdown\n# Title\n\nBody\n```", "# Title\n\nBody"},
		{"bare fence", "```\ntext\n```", "text"},
		{"trailing fence only", "text\n```", "text"},
		{"surrounding whitespace", "  \n```\ntext\n```\n  ", "text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
