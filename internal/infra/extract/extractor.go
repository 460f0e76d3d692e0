package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// Extractor implements the text-extraction port for the submission formats
// the intake form accepts: PDF, DOCX and plain text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

var whitespace = regexp.MustCompile(`\s+`)

// Extract returns the cleaned plain text of the document, or a typed
// failure (ErrUnsupported for unknown formats, ErrUnreadable for parse
// failures).
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("extract %s: %v: %w", doc.Filename, err, domain.ErrTimeout)
	}
	if len(doc.Content) == 0 {
		return "", fmt.Errorf("extract %s: empty document: %w", doc.Filename, domain.ErrUnreadable)
	}

	var text string
	var err error
	switch doc.Ext() {
	case ".pdf":
		text, err = extractPDF(doc.Content)
	case ".docx":
		text, err = extractDOCX(doc.Content)
	case ".txt", ".md", ".text":
		text = string(doc.Content)
	default:
		return "", fmt.Errorf("extract %s: %w", doc.Filename, domain.ErrUnsupported)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %v: %w", doc.Filename, err, domain.ErrUnreadable)
	}
	return clean(text), nil
}

// clean collapses runs of whitespace so prompt input stays compact.
func clean(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
