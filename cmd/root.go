// Package cmd implements the CLI commands for criteriamd using Cobra.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/criteriamd/internal/config"
	"github.com/gaurav-prasanna/criteriamd/internal/logging"
)

// app carries the dependencies shared by all commands.
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	stderr io.Writer

	cfg *config.Config
}

func newApp(fsys afero.Fs, stderr io.Writer) *app {
	v := viper.New()
	v.SetFs(fsys)
	return &app{fs: fsys, v: v, stderr: stderr}
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "criteriamd",
		Short: "criteriamd — merge evaluation-criteria HTML pages into one Markdown document",
		Long: `criteriamd reads a fixed, ordered list of evaluation-criteria HTML pages,
converts each one to Markdown with a small set of tag rules, and writes a
single combined document.

Usage:
  criteriamd convert [flags]`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger := logging.NewWithWriter(a.stderr, cfg.LogLevel)
			logging.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

			if used := a.v.ConfigFileUsed(); used != "" {
				logger.Debug("using config file", logging.FieldConfig, used)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./criteriamd.yaml or ~/.config/criteriamd/criteriamd.yaml)")
	rootCmd.PersistentFlags().String("log_level", "", "log level: debug, info, warn, error")
	_ = a.v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log_level"))

	rootCmd.AddCommand(newConvertCmd(a))
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(afero.NewOsFs(), os.Stderr)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		stop()
		os.Exit(1)
	}
}
