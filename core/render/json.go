// Package render — JSON renderer.
// Emits the combined Markdown together with a per-section heading outline
// and element counts, both taken from goldmark's parse of the Markdown.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/criteriamd/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct {
	md goldmark.Markdown
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{md: goldmark.New()}
}

// Render converts the combined Markdown, metadata and sections into JSON.
func (r *JSONRenderer) Render(markdown string, meta core.DocumentMetadata, sections []core.Section) ([]byte, error) {
	outlines := make([]core.SectionOutline, 0, len(sections))
	for _, s := range sections {
		headings, _ := r.inspect(s.Markdown)
		outlines = append(outlines, core.SectionOutline{Section: s, Headings: headings})
	}

	_, structure := r.inspect(markdown)

	page := core.DocumentJSON{
		Metadata:  meta,
		Sections:  outlines,
		Structure: structure,
		Markdown:  markdown,
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// inspect parses md and collects its headings and element counts.
func (r *JSONRenderer) inspect(md string) ([]core.Heading, core.DocumentStructure) {
	src := []byte(md)
	doc := r.md.Parser().Parse(text.NewReader(src))

	headings := []core.Heading{}
	var st core.DocumentStructure

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			st.Headings++
			headings = append(headings, core.Heading{
				Level: node.Level,
				Text:  nodeText(node, src),
			})
		case *ast.ListItem:
			st.ListItems++
		case *ast.Blockquote:
			st.BlockQuotes++
		case *ast.Emphasis:
			st.Emphasis++
		}
		return ast.WalkContinue, nil
	})

	return headings, st
}

// nodeText concatenates the literal text below n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
