package folio

import (
	"fmt"
	"strings"
)

// Pipeline stages a Warning can originate from.
const (
	// StageScan covers grammar recovery: malformed grounding tags the
	// scanner kept as plain text instead of failing on.
	StageScan = "scan"

	// StageExtract covers image blocks that produced no asset file.
	StageExtract = "extract"

	// StageRender covers blocks a renderer left out of the output.
	StageRender = "render"
)

// Warning describes a non-fatal issue encountered during conversion.
// Warnings indicate the conversion succeeded but the output may be
// imperfect: a malformed tag was kept as plain text, an image block
// produced no asset, a block was skipped during rendering.
type Warning struct {
	// Stage is the pipeline stage that recorded the warning. One of
	// StageScan, StageExtract, StageRender.
	Stage string

	// Page is the zero-based page index the warning applies to, or -1
	// when the warning is not tied to a page.
	Page int

	// Message describes the issue.
	Message string
}

// String returns the warning in "stage (page N): message" form. The
// page number is 1-based for display and omitted when unknown.
func (w Warning) String() string {
	if w.Page < 0 {
		return fmt.Sprintf("%s: %s", w.Stage, w.Message)
	}
	return fmt.Sprintf("%s (page %d): %s", w.Stage, w.Page+1, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string,
// separated by semicolons. It returns "" for an empty slice.
//
// Example:
//
//	md, warnings, err := folio.Convert("scan.pdf").WithEngine(engine).Markdown()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
