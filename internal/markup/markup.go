// Package markup provides the pluggable content validation hook applied to
// free-text fields before persistence.
package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ContentValidator vets free-text content before it is saved. The web layer
// decides which backend to plug in; the core only calls Validate.
type ContentValidator interface {
	Validate(content string) error
}

// Noop accepts any content. It is the default validator.
type Noop struct{}

func (Noop) Validate(string) error { return nil }

// Markdown validates content by running it through a goldmark conversion.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown validator with GFM extensions enabled.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (m *Markdown) Validate(content string) error {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(content), &buf); err != nil {
		return fmt.Errorf("invalid markup: %w", err)
	}
	return nil
}
