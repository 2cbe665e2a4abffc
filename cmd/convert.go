// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → normalize → assemble → render → write.
//
// It handles flag validation and renderer/engine selection.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/criteriamd/core"
	"github.com/gaurav-prasanna/criteriamd/core/extract"
	"github.com/gaurav-prasanna/criteriamd/core/fetch"
	"github.com/gaurav-prasanna/criteriamd/core/normalize"
	"github.com/gaurav-prasanna/criteriamd/core/output"
	"github.com/gaurav-prasanna/criteriamd/core/pipeline"
	"github.com/gaurav-prasanna/criteriamd/core/render"
	"github.com/gaurav-prasanna/criteriamd/internal/config"
	"github.com/gaurav-prasanna/criteriamd/internal/logging"
)

// formatFlags are the mutually exclusive output format switches.
type formatFlags struct {
	pdf      bool
	markdown bool
	json     bool
}

// boundFlags maps config keys to the convert flags that override them.
var boundFlags = map[string]string{
	config.KeyInputDir:  "input_dir",
	config.KeyOutput:    "output",
	config.KeyOutputDir: "output_dir",
	config.KeyEngine:    "engine",
	config.KeyExtract:   "extract",
	config.KeyPDFFont:   "pdf_font",
}

func newConvertCmd(a *app) *cobra.Command {
	var formats formatFlags

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the configured criteria pages into one document",
		Long: `Convert reads every configured HTML page in order, converts it to Markdown,
joins the sections under a fixed title and writes the combined document
as Markdown (default), PDF, or JSON.

Pages missing from the input directory are skipped with a warning.

Examples:
  criteriamd convert
  criteriamd convert --input_dir ./pages --output criteria.md
  criteriamd convert --json --output_dir ./out
  criteriamd convert --pdf --pdf_font ./NanumGothic.ttf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConvert(cmd, formats)
		},
	}

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&formats.markdown, "markdown", false, "Output Markdown (default)")
	convertCmd.Flags().BoolVar(&formats.pdf, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&formats.json, "json", false, "Output structured JSON")

	// Input and output locations.
	convertCmd.Flags().String("input_dir", "", "Directory holding the HTML pages")
	convertCmd.Flags().String("output", "", "Output file name; its extension follows the format")
	convertCmd.Flags().String("output_dir", "", "Output directory (default: current directory)")

	// Conversion behavior.
	convertCmd.Flags().String("engine", "", "Conversion engine: criteria or generic")
	convertCmd.Flags().Bool("extract", false, "Convert only the page's main content container")
	convertCmd.Flags().String("pdf_font", "", "UTF-8 TrueType font used for PDF output (required for Hangul)")

	for key, name := range boundFlags {
		_ = a.v.BindPFlag(key, convertCmd.Flags().Lookup(name))
	}

	return convertCmd
}

func (a *app) runConvert(cmd *cobra.Command, formats formatFlags) error {
	cfg := *a.cfg

	// --- Validate flags ---
	format, err := selectFormat(formats, cfg.Format)
	if err != nil {
		return err
	}
	cfg.Format = format

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	renderer, err := selectRenderer(&cfg)
	if err != nil {
		return err
	}

	normalizer, err := normalize.ForEngine(cfg.Engine)
	if err != nil {
		return err
	}

	logger := logging.FromContext(cmd.Context())

	var extractor core.Extractor
	if cfg.Extract {
		extractor = extract.New(logger)
	}

	writer, err := output.New(a.fs, cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	logger.Info("converting",
		logging.FieldInputDir, cfg.InputDir,
		logging.FieldEngine, cfg.Engine,
		logging.FieldFormat, cfg.Format)

	p := pipeline.New(fetch.New(a.fs, cfg.InputDir), extractor, normalizer, nil)
	res, err := p.Run(cmd.Context(), pipeline.Options{
		Files:  cfg.Files,
		Title:  cfg.Title,
		Intro:  cfg.Intro,
		Engine: cfg.Engine,
	})
	if err != nil {
		return err
	}

	data, err := renderer.Render(res.Markdown, res.Metadata, res.Sections)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(cfg.Output, data, renderer.Extension())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	logger.Info("done",
		logging.FieldOutput, path,
		logging.FieldProcessed, len(res.Sections),
		logging.FieldSkipped, len(res.Skipped))
	return nil
}

// selectFormat checks that at most one output format flag is set and
// falls back to the configured format otherwise.
func selectFormat(f formatFlags, configured string) (string, error) {
	var chosen []string
	if f.markdown {
		chosen = append(chosen, config.FormatMarkdown)
	}
	if f.pdf {
		chosen = append(chosen, config.FormatPDF)
	}
	if f.json {
		chosen = append(chosen, config.FormatJSON)
	}

	switch len(chosen) {
	case 0:
		return configured, nil
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("only one output format allowed per run (got %d)", len(chosen))
	}
}

// selectRenderer creates the Renderer for the configured format.
func selectRenderer(cfg *config.Config) (core.Renderer, error) {
	if cfg.Format == config.FormatPDF {
		return &render.PDFRenderer{FontPath: cfg.PDFFont}, nil
	}
	return render.ForFormat(cfg.Format)
}
