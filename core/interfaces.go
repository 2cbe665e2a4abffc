// Package core defines the pipeline stages for criteriamd.
// Each stage is a small interface so the driver can be tested with
// in-memory sources and alternate engines.
package core

import "context"

// FetchResult holds one source document read from the input directory.
type FetchResult struct {
	Name string // file name as listed in the configuration
	Path string // resolved path the document was read from
	HTML string
}

// Section is the Markdown produced for a single source document.
type Section struct {
	Source   string `json:"source"`
	Markdown string `json:"markdown"`
}

// DocumentMetadata describes the combined document handed to renderers.
type DocumentMetadata struct {
	Title       string   `json:"title"`
	Intro       string   `json:"intro"`
	Sources     []string `json:"sources"`
	Skipped     []string `json:"skipped,omitempty"`
	Engine      string   `json:"engine"`
	GeneratedAt string   `json:"generated_at"` // ISO8601
}

// Heading is a single heading found in rendered Markdown.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// SectionOutline is a section together with its parsed heading outline.
type SectionOutline struct {
	Section
	Headings []Heading `json:"headings"`
}

// DocumentStructure counts structural Markdown elements of the output.
type DocumentStructure struct {
	Headings    int `json:"headings"`
	ListItems   int `json:"list_items"`
	BlockQuotes int `json:"block_quotes"`
	Emphasis    int `json:"emphasis"`
}

// DocumentJSON is the complete JSON output.
type DocumentJSON struct {
	Metadata  DocumentMetadata  `json:"metadata"`
	Sections  []SectionOutline  `json:"sections"`
	Structure DocumentStructure `json:"structure"`
	Markdown  string            `json:"markdown"`
}

// Fetcher reads a named source document.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (*FetchResult, error)
}

// Extractor reduces a full HTML page to the fragment worth converting.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts an HTML document into a Markdown fragment.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts the combined Markdown (and metadata) into an output format.
type Renderer interface {
	Render(markdown string, meta DocumentMetadata, sections []Section) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
