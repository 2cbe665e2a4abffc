// Package extract narrows a criteria page to the fragment worth converting.
// The page <title>, inline scripts and styles would otherwise reach the
// transformer as plain text.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/gaurav-prasanna/criteriamd/internal/logging"
)

// ErrNoContainer is returned for documents without any content container.
var ErrNoContainer = errors.New("no content container found in HTML")

// dropped matches elements whose text never belongs in a criteria section.
var dropped = strings.Join([]string{
	"head", "script", "style", "noscript", "template", "iframe", "svg", "canvas",
}, ", ")

// containers are tried in order; the first match is kept.
var containers = []string{"main", "article", "[role=main]", "body"}

// Content is the part of a page selected for conversion.
type Content struct {
	HTML      string
	Container string // selector that matched
	Title     string // heading carried in from outside the container
}

// HTMLExtractor keeps a page's main content and its section heading.
type HTMLExtractor struct {
	logger *log.Logger
}

// New creates an HTMLExtractor. A nil logger uses the package default.
func New(logger *log.Logger) *HTMLExtractor {
	if logger == nil {
		logger = logging.Default()
	}
	return &HTMLExtractor{logger: logger}
}

// Extract returns the outer HTML of the selected content.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	c, err := e.Select(html)
	if err != nil {
		return "", err
	}
	e.logger.Debug("content selected", "container", c.Container, "carried_title", c.Title)
	return c.HTML, nil
}

// Select picks the content container of a page. Criteria pages often put
// the section <h1> in a <header> beside <main>; when the container has no
// <h1> of its own, the page's first one is moved to its top.
func (e *HTMLExtractor) Select(html string) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find(dropped).Remove()

	c := &Content{}
	var box *goquery.Selection
	for _, sel := range containers {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			box, c.Container = found, sel
			break
		}
	}
	if box == nil {
		return nil, ErrNoContainer
	}

	if box.Find("h1").Length() == 0 {
		if h1 := doc.Find("h1").First(); h1.Length() > 0 {
			c.Title = strings.TrimSpace(h1.Text())
			box.PrependSelection(h1)
		}
	}

	c.HTML, err = goquery.OuterHtml(box)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}
	return c, nil
}
