// Package pipeline drives one conversion run: every configured document is
// fetched, optionally reduced to its main content, normalized to Markdown,
// and the fragments are assembled into the combined document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gaurav-prasanna/criteriamd/core"
	"github.com/gaurav-prasanna/criteriamd/core/assemble"
	"github.com/gaurav-prasanna/criteriamd/internal/logging"
)

// Options selects the documents and the fixed header of a run.
type Options struct {
	Files  []string
	Title  string
	Intro  string
	Engine string // recorded in the metadata only
}

// Result is the outcome of a run.
type Result struct {
	Markdown string
	Sections []core.Section
	Skipped  []string
	Metadata core.DocumentMetadata
}

// Pipeline wires the stages of a conversion run.
type Pipeline struct {
	fetcher    core.Fetcher
	extractor  core.Extractor // nil disables extraction
	normalizer core.Normalizer
	logger     *log.Logger // nil means the logger carried by the run context
	now        func() time.Time
}

// New creates a Pipeline. extractor may be nil. A nil logger defers to
// logging.FromContext on each Run.
func New(fetcher core.Fetcher, extractor core.Extractor, normalizer core.Normalizer, logger *log.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		extractor:  extractor,
		normalizer: normalizer,
		logger:     logger,
		now:        time.Now,
	}
}

// Run processes opts.Files in order. Missing documents are skipped with a
// warning; any other failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := p.loggerFor(ctx)
	res := &Result{}

	for _, name := range opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		md, err := p.processDocument(ctx, logger, name)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("document not found, skipping", logging.FieldFile, name)
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		res.Sections = append(res.Sections, core.Section{Source: name, Markdown: md})
	}

	fragments := make([]string, len(res.Sections))
	sources := make([]string, len(res.Sections))
	for i, s := range res.Sections {
		fragments[i] = s.Markdown
		sources[i] = s.Source
	}

	res.Markdown = assemble.Document(opts.Title, opts.Intro, fragments)
	res.Metadata = core.DocumentMetadata{
		Title:       opts.Title,
		Intro:       opts.Intro,
		Sources:     sources,
		Skipped:     res.Skipped,
		Engine:      opts.Engine,
		GeneratedAt: p.now().UTC().Format(time.RFC3339),
	}

	logger.Info("sections assembled",
		logging.FieldProcessed, len(res.Sections),
		logging.FieldSkipped, len(res.Skipped),
		logging.FieldTotal, len(opts.Files))

	return res, nil
}

// processDocument runs a single document through fetch, extract and normalize.
func (p *Pipeline) processDocument(ctx context.Context, logger *log.Logger, name string) (string, error) {
	// 1. Fetch
	doc, err := p.fetcher.Fetch(ctx, name)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	logger.Info("processing", logging.FieldFile, name)

	// 2. Extract main content
	html := doc.HTML
	if p.extractor != nil {
		html, err = p.extractor.Extract(html)
		if err != nil {
			return "", fmt.Errorf("extract: %w", err)
		}
	}

	// 3. Normalize to Markdown
	md, err := p.normalizer.Normalize(html)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}
	logger.Debug("normalized", logging.FieldFile, name, "bytes", len(md))

	return md, nil
}

func (p *Pipeline) loggerFor(ctx context.Context) *log.Logger {
	if p.logger != nil {
		return p.logger
	}
	return logging.FromContext(ctx)
}
