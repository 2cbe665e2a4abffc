// Package render provides output renderers for the combined document.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/criteriamd/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the pipeline's output format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(markdown string, _ core.DocumentMetadata, _ []core.Section) ([]byte, error) {
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ForFormat returns the renderer for a configured output format.
func ForFormat(format string) (core.Renderer, error) {
	switch format {
	case "markdown", "":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no renderer for format %q", format)
	}
}
