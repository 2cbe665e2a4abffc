// Package normalize implements the Normalizer interface.
// The criteria engine applies the fixed tag rules of the transform package;
// the generic engine hands the page to html-to-markdown for documents that
// fall outside that vocabulary.
package normalize

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/criteriamd/core"
	"github.com/gaurav-prasanna/criteriamd/core/transform"
)

// Engine names accepted by ForEngine.
const (
	EngineCriteria = "criteria"
	EngineGeneric  = "generic"
)

// Engines lists the supported engine names.
var Engines = []string{EngineCriteria, EngineGeneric}

// CriteriaNormalizer converts HTML with the criteria tag rules.
type CriteriaNormalizer struct{}

// NewCriteria creates a CriteriaNormalizer.
func NewCriteria() *CriteriaNormalizer {
	return &CriteriaNormalizer{}
}

// Normalize runs a fresh transformer over html. It never fails.
func (n *CriteriaNormalizer) Normalize(html string) (string, error) {
	return transform.Convert(html), nil
}

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// NewGeneric creates a MarkdownNormalizer.
func NewGeneric() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML document into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	// Fragments are joined with a leading-newline separator.
	return markdown + "\n", nil
}

// ForEngine returns the Normalizer registered under name.
func ForEngine(name string) (core.Normalizer, error) {
	switch name {
	case EngineCriteria, "":
		return NewCriteria(), nil
	case EngineGeneric:
		return NewGeneric(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want one of %v)", name, Engines)
	}
}
