package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/criteriamd/core"
	"github.com/gaurav-prasanna/criteriamd/core/render"
	"github.com/gaurav-prasanna/criteriamd/internal/config"
	"github.com/gaurav-prasanna/criteriamd/internal/logging"
)

const defaultInputDir = "existing-evaluation-criteria"

// runCLI executes the command tree against memFS and returns stdout and stderr.
func runCLI(t *testing.T, memFS afero.Fs, args ...string) (string, string, error) {
	t.Helper()

	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd(newApp(memFS, &stderr))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writePage(t *testing.T, memFS afero.Fs, dir, name, html string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(memFS, filepath.Join(dir, name), []byte(html), 0o644))
}

func readFile(t *testing.T, memFS afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(memFS, path)
	require.NoError(t, err)
	return string(data)
}

func TestConvertDefaults(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, defaultInputDir, "ch3_01_01.html", "<h1>1. 정확성</h1><p>내용</p>")
	writePage(t, memFS, defaultInputDir, "ch3_01_03.html", "<h1>3. 공정성</h1>")

	stdout, stderr, err := runCLI(t, memFS, "convert")
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ Written: existing-evaluation-criteria.md")
	assert.Contains(t, stderr, "ch3_01_02.html")

	want := "# 언론 보도 평가 기준 (기존 8항목)\n\n" +
		"> 기존 평가 기준 8개 항목을 통합한 문서입니다.\n\n" +
		"---\n\n" +
		"## 1. 정확성\n\n내용\n\n---\n\n" +
		"## 3. 공정성\n\n---\n\n"
	assert.Equal(t, want, readFile(t, memFS, "existing-evaluation-criteria.md"))
}

func TestConvertFlags(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, "pages", "ch3_01_01.html", "<html><head><title>x</title></head><body><h3>Sub</h3></body></html>")

	_, _, err := runCLI(t, memFS, "convert",
		"--input_dir", "pages",
		"--output", "merged.md",
		"--output_dir", "out",
		"--extract",
		"--log_level", "error")
	require.NoError(t, err)

	got := readFile(t, memFS, filepath.Join("out", "merged.md"))
	assert.Contains(t, got, "### Sub\n\n")
	assert.NotContains(t, got, "x\n")
}

func TestConvertConfigFile(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, "src", "b.html", "<h1>B</h1>")
	writePage(t, memFS, "src", "a.html", "<h1>A</h1>")
	require.NoError(t, afero.WriteFile(memFS, "conf.yaml", []byte(`input_dir: src
output: doc.md
files: [b.html, a.html]
title: Title
intro: Intro
`), 0o644))

	_, _, err := runCLI(t, memFS, "--config", "conf.yaml", "convert")
	require.NoError(t, err)

	want := "# Title\n\n> Intro\n\n---\n\n## B\n\n---\n\n## A\n\n---\n\n"
	assert.Equal(t, want, readFile(t, memFS, "doc.md"))
}

func TestConvertJSON(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, defaultInputDir, "ch3_01_01.html", "<h1>One</h1><h3>Detail</h3>")

	stdout, _, err := runCLI(t, memFS, "convert", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "existing-evaluation-criteria.json")

	var doc core.DocumentJSON
	require.NoError(t, json.Unmarshal([]byte(readFile(t, memFS, "existing-evaluation-criteria.json")), &doc))
	assert.Equal(t, []string{"ch3_01_01.html"}, doc.Metadata.Sources)
	assert.Len(t, doc.Metadata.Skipped, 7)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, []core.Heading{{Level: 2, Text: "One"}, {Level: 3, Text: "Detail"}}, doc.Sections[0].Headings)
}

func TestConvertPDF(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, defaultInputDir, "ch3_01_01.html", "<h1>One</h1><ul><li>item</li></ul>")
	require.NoError(t, afero.WriteFile(memFS, "conf.yaml", []byte("title: Criteria\nintro: Merged pages.\n"), 0o644))

	_, _, err := runCLI(t, memFS, "--config", "conf.yaml", "convert", "--pdf")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, memFS, "existing-evaluation-criteria.pdf")[:5], "%PDF")
}

func TestConvertPDFHangulNeedsFont(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, defaultInputDir, "ch3_01_01.html", "<h1>1. 정확성</h1>")

	_, _, err := runCLI(t, memFS, "convert", "--pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrFontRequired)
	assert.Contains(t, err.Error(), "pdf_font")

	exists, statErr := afero.Exists(memFS, "existing-evaluation-criteria.pdf")
	require.NoError(t, statErr)
	assert.False(t, exists)
}

func TestConvertLogsThroughCommandContext(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, defaultInputDir, "ch3_01_01.html", "<h1>One</h1>")

	_, stderr, err := runCLI(t, memFS, "convert", "--log_level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "converting")
	assert.Contains(t, stderr, "normalized")
	assert.Contains(t, stderr, "document not found")
}

func TestConvertGenericEngine(t *testing.T) {
	memFS := afero.NewMemMapFs()
	writePage(t, memFS, defaultInputDir, "ch3_01_01.html", "<h1>One</h1>")

	_, _, err := runCLI(t, memFS, "convert", "--engine", "generic")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, memFS, "existing-evaluation-criteria.md"), "# One\n")
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"two formats", []string{"convert", "--pdf", "--json"}, "only one output format"},
		{"unknown engine", []string{"convert", "--engine", "pandoc"}, "unknown engine"},
		{"positional args", []string{"convert", "extra"}, "unknown command"},
		{"missing config file", []string{"--config", "absent.yaml", "convert"}, "reading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, afero.NewMemMapFs(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		name    string
		flags   formatFlags
		want    string
		wantErr bool
	}{
		{"none uses configured", formatFlags{}, config.FormatJSON, false},
		{"markdown", formatFlags{markdown: true}, config.FormatMarkdown, false},
		{"pdf", formatFlags{pdf: true}, config.FormatPDF, false},
		{"json", formatFlags{json: true}, config.FormatJSON, false},
		{"two", formatFlags{pdf: true, markdown: true}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectFormat(tt.flags, config.FormatJSON)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
