// Package render — PDF renderer.
// Lays out the combined Markdown with gofpdf. Only the constructs the
// criteria transformer emits are recognized: headings, bullets (with
// indentation), block quotes, horizontal rules and paragraphs.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/criteriamd/core"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	coreFamily    = "Helvetica"
	unicodeFamily = "unicode"
)

// ErrFontRequired is returned when the document holds text the built-in
// fonts cannot draw and no UTF-8 font was configured.
var ErrFontRequired = errors.New("set pdf_font to a UTF-8 TrueType font")

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct {
	// FontPath optionally names a UTF-8 TrueType font. The built-in
	// Helvetica only covers cp1252, so Hangul needs one.
	FontPath string
}

// NewPDFRenderer creates a PDFRenderer using the built-in fonts.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// pdfWriter bundles the document with its font family and text translation.
type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.DocumentMetadata, _ []core.Section) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)

	w := &pdfWriter{pdf: pdf, family: coreFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.FontPath == "" {
		if ch, ok := firstNonCP1252(markdown); ok {
			return nil, fmt.Errorf("character %q is outside cp1252: %w", ch, ErrFontRequired)
		}
	} else {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(unicodeFamily, style, r.FontPath)
		}
		w.family = unicodeFamily
		w.tr = func(s string) string { return s }
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	pdf.AddPage()

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case trimmed == "---":
			w.rule()
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			w.heading(strings.TrimSpace(trimmed[level:]), level)
		case strings.HasPrefix(trimmed, "> "):
			w.quote(trimmed[2:])
		case strings.HasPrefix(trimmed, "- "):
			indent := len(line) - len(strings.TrimLeft(line, " "))
			w.bullet(trimmed[2:], indent)
		default:
			w.setFont("", 10)
			pdf.MultiCell(0, 5, w.tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (w *pdfWriter) setFont(style string, size float64) {
	w.pdf.SetFont(w.family, style, size)
}

// heading sets the font size based on heading level and writes text.
func (w *pdfWriter) heading(text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.setFont("B", size)
	w.pdf.MultiCell(0, size*0.6, w.tr(cleanInlineMarkdown(text)), "", "L", false)
	w.pdf.Ln(2)
}

// bullet writes a list item; every two leading spaces shift it right.
func (w *pdfWriter) bullet(text string, indent int) {
	left, _, _, _ := w.pdf.GetMargins()
	offset := float64(indent/2) * 5

	w.setFont("", 10)
	w.pdf.SetX(left + offset)
	w.pdf.MultiCell(0, 5, w.tr("- "+cleanInlineMarkdown(text)), "", "L", false)
}

func (w *pdfWriter) quote(text string) {
	left, _, _, _ := w.pdf.GetMargins()

	w.setFont("I", 10)
	w.pdf.SetTextColor(90, 90, 90)
	w.pdf.SetX(left + 6)
	w.pdf.MultiCell(0, 5, w.tr(cleanInlineMarkdown(text)), "L", "L", false)
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) rule() {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY() + 2

	w.pdf.SetDrawColor(180, 180, 180)
	w.pdf.Line(left, y, pageW-right, y)
	w.pdf.SetDrawColor(0, 0, 0)
	w.pdf.Ln(5)
}

var (
	annotationRe = regexp.MustCompile(`\*\(([^)]*(?:\([^)]*\))?[^)]*)\)\*`)
	italicRe     = regexp.MustCompile(`\B\*([^*\s](?:[^*]*[^*\s])?)\*\B`)
)

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	// *(note)* annotations keep their parentheses.
	text = annotationRe.ReplaceAllString(text, "($1)")
	text = italicRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// firstNonCP1252 returns the first rune the core fonts cannot encode.
func firstNonCP1252(s string) (rune, bool) {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return r, true
		}
	}
	return 0, false
}
