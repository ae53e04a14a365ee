// Package extractor declares the document-processing collaborators the
// matching core consumes. The implementations live in adjacent services
// (PDF/DOCX/OCR extraction, GPT field extraction); the core only depends
// on these contracts and degrades gracefully when they fail.
package extractor

import "context"

// TextExtractor turns an uploaded document into plain text. Failure
// yields an empty string, never an error surfaced to the matching flow.
type TextExtractor interface {
	ExtractText(ctx context.Context, fileBytes []byte, filename string) (text string, mimeType string)
}

// FieldExtractor pulls structured candidate/offer fields out of free
// text, typically through an LLM. Its output feeds the normalizer with
// the same alias matching as manually entered data; on error the caller
// falls back to whatever raw fields already exist.
type FieldExtractor interface {
	ExtractStructuredFields(ctx context.Context, text string) (map[string]any, error)
}

// Noop satisfies both contracts with empty output, used when no
// extraction service is wired.
type Noop struct{}

func (Noop) ExtractText(context.Context, []byte, string) (string, string) {
	return "", ""
}

func (Noop) ExtractStructuredFields(context.Context, string) (map[string]any, error) {
	return map[string]any{}, nil
}
