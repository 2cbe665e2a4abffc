// Package config loads criteriamd settings from defaults, an optional YAML
// config file, CRITERIAMD_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gaurav-prasanna/criteriamd/core/normalize"
	"github.com/spf13/viper"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatMarkdown, FormatPDF, FormatJSON}

// Config key names, shared with flag bindings.
const (
	KeyInputDir  = "input_dir"
	KeyOutput    = "output"
	KeyOutputDir = "output_dir"
	KeyFiles     = "files"
	KeyTitle     = "title"
	KeyIntro     = "intro"
	KeyEngine    = "engine"
	KeyExtract   = "extract"
	KeyFormat    = "format"
	KeyLogLevel  = "log_level"
	KeyPDFFont   = "pdf_font"
)

const (
	configName = "criteriamd"
	envPrefix  = "CRITERIAMD"
)

// Config holds the settings for one conversion run.
type Config struct {
	InputDir  string   `mapstructure:"input_dir"`
	Output    string   `mapstructure:"output"`
	OutputDir string   `mapstructure:"output_dir"`
	Files     []string `mapstructure:"files"`
	Title     string   `mapstructure:"title"`
	Intro     string   `mapstructure:"intro"`
	Engine    string   `mapstructure:"engine"`
	Extract   bool     `mapstructure:"extract"`
	Format    string   `mapstructure:"format"`
	LogLevel  string   `mapstructure:"log_level"`
	PDFFont   string   `mapstructure:"pdf_font"`
}

// DefaultFiles returns the eight criteria pages in processing order.
func DefaultFiles() []string {
	files := make([]string, 0, 8)
	for i := 1; i <= 8; i++ {
		files = append(files, fmt.Sprintf("ch3_01_%02d.html", i))
	}
	return files
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInputDir, "existing-evaluation-criteria")
	v.SetDefault(KeyOutput, "existing-evaluation-criteria.md")
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyFiles, DefaultFiles())
	v.SetDefault(KeyTitle, "언론 보도 평가 기준 (기존 8항목)")
	v.SetDefault(KeyIntro, "기존 평가 기준 8개 항목을 통합한 문서입니다.")
	v.SetDefault(KeyEngine, normalize.EngineCriteria)
	v.SetDefault(KeyExtract, false)
	v.SetDefault(KeyFormat, FormatMarkdown)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyPDFFont, "")
}

// Load reads configuration into v and returns the decoded Config.
// When cfgFile is empty, criteriamd.yaml is searched for in the working
// directory and ~/.config/criteriamd; a missing file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return errors.New("no input files configured")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output file name is empty")
	}
	if !slices.Contains(normalize.Engines, c.Engine) {
		return fmt.Errorf("unknown engine %q (want one of %v)", c.Engine, normalize.Engines)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q (want one of %v)", c.Format, Formats)
	}
	return nil
}
