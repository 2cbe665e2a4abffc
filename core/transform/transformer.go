// Package transform implements the criteria markup transformer.
// It walks the token stream of an HTML page once, tracking which structural
// regions are open, and emits Markdown fragments as text arrives:
//
//	<h1>     → "## "      <h3>         → "### "
//	<strong> → "**…**"    <blockquote> → "> " per line
//	<li>     → "- " / "  - " (circle style), indented per <ul> depth
//	<span style="font-size:0.8em"> → " *(…)*"
//
// No document tree is built and malformed markup never produces an error;
// unclosed tags simply never reach their close handler.
package transform

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// tagContext holds the regions the transformer is currently inside.
type tagContext struct {
	inHeading1       bool
	inEmphasisStrong bool
	inQuoteBlock     bool
	listDepth        int
	smallTextDepth   int
	current          string // most recently opened element, cleared on any close
}

// Transformer converts one HTML document into Markdown.
// Use a fresh Transformer for each document.
type Transformer struct {
	ctx tagContext
	buf []string
}

// New creates a Transformer with empty state.
func New() *Transformer {
	return &Transformer{}
}

// Convert transforms a single HTML document into Markdown.
func Convert(htmlText string) string {
	t := New()
	t.Feed(strings.NewReader(htmlText))
	return t.Output()
}

// Feed tokenizes r and applies every event to the transformer state.
// Reading stops at EOF or at the first read error; whatever was emitted up
// to that point stays in the buffer.
func (t *Transformer) Feed(r io.Reader) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken:
			name, style := tagNameAndStyle(z)
			t.openTag(name, style)
		case html.SelfClosingTagToken:
			name, style := tagNameAndStyle(z)
			t.openTag(name, style)
			t.closeTag(name)
		case html.EndTagToken:
			name, _ := z.TagName()
			t.closeTag(string(name))
		case html.TextToken:
			t.text(string(z.Text()))
		}
	}
}

// Output returns the Markdown emitted so far.
func (t *Transformer) Output() string {
	return strings.Join(t.buf, "")
}

// Fragments returns a copy of the output buffer in append order.
func (t *Transformer) Fragments() []string {
	out := make([]string, len(t.buf))
	copy(out, t.buf)
	return out
}

func (t *Transformer) emit(s string) {
	t.buf = append(t.buf, s)
}

// tagNameAndStyle reads the current tag's name and its style attribute.
// A repeated style attribute keeps the last value.
func tagNameAndStyle(z *html.Tokenizer) (string, string) {
	raw, hasAttr := z.TagName()
	name := string(raw)

	var style string
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "style" {
			style = string(val)
		}
	}
	return name, style
}

func (t *Transformer) openTag(name, style string) {
	t.ctx.current = name

	switch name {
	case "h1":
		t.ctx.inHeading1 = true
	case "strong", "b":
		t.ctx.inEmphasisStrong = true
	case "blockquote":
		t.ctx.inQuoteBlock = true
	case "ul":
		t.ctx.listDepth++
	case "li":
		marker := "- "
		if IsCircleBullet(style) {
			marker = "  - "
		}
		t.emit(strings.Repeat("  ", max(t.ctx.listDepth-1, 0)) + marker)
	case "span":
		if IsSmallText(style) {
			t.ctx.smallTextDepth++
		}
	}
}

func (t *Transformer) closeTag(name string) {
	switch name {
	case "h1":
		t.ctx.inHeading1 = false
		t.emit("\n\n")
	case "h3":
		// Emitted even when no heading state was recorded on open.
		t.emit("\n\n")
	case "strong", "b":
		t.ctx.inEmphasisStrong = false
	case "blockquote":
		t.ctx.inQuoteBlock = false
		t.emit("\n")
	case "ul":
		if t.ctx.listDepth > 0 {
			t.ctx.listDepth--
			if t.ctx.listDepth == 0 {
				t.emit("\n")
			}
		}
	case "li":
		t.emit("\n")
	case "span":
		if t.ctx.smallTextDepth > 0 {
			t.ctx.smallTextDepth--
		}
	case "p":
		// The quote close already ends the line.
		if !t.ctx.inQuoteBlock {
			t.emit("\n")
		}
	}

	t.ctx.current = ""
}

func (t *Transformer) text(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}
	data := collapseSpace(trimmed)

	switch {
	case t.ctx.inHeading1 && t.ctx.current == "h1":
		t.emit("## " + data)
	case t.ctx.current == "h3":
		t.emit("### " + data)
	case t.ctx.inEmphasisStrong:
		t.emit("**" + data + "**")
	case t.ctx.inQuoteBlock:
		for _, line := range strings.Split(trimmed, "\n") {
			if line = collapseSpace(line); line != "" {
				t.emit("> " + line + "\n")
			}
		}
	case t.ctx.smallTextDepth > 0:
		t.emit(" *(" + data + ")*")
	default:
		t.emit(data)
	}
}

// collapseSpace trims s and replaces every whitespace run with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
