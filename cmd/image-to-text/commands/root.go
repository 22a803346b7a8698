// Package commands implements the image-to-text command line.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-to-text/internal/config"
	"github.com/ironsheep/image-to-text/internal/logging"
	"github.com/ironsheep/image-to-text/internal/ocr"
	"github.com/ironsheep/image-to-text/pkg/imagetotext"
)

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app is the state shared by all subcommands after the root pre-run.
type app struct {
	info BuildInfo

	cfgFile   string
	verbose   bool
	noColor   bool
	logFormat string

	cfg    *config.Config
	logger zerolog.Logger

	// newConverter builds the converter for convert and serve.
	newConverter func(ocr.Config) *imagetotext.Converter
}

func (a *app) converter() *imagetotext.Converter {
	return a.newConverter(a.cfg.OCR.Config)
}

// Execute runs the root command.
func Execute(info BuildInfo) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(info).ExecuteContext(ctx)
}

func newRootCmd(info BuildInfo) *cobra.Command {
	return newApp(info).rootCmd()
}

func newApp(info BuildInfo) *app {
	return &app{
		info:         info,
		logger:       logging.Nop(),
		newConverter: imagetotext.NewTesseract,
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "image-to-text",
		Short: "Extract and clean up text from images with Tesseract OCR",
		Long: `image-to-text recognizes the text in images with Tesseract and formats it:
whitespace is collapsed, sentences are split into paragraphs and each paragraph
starts with a capital letter.

It runs as a one-shot converter or as an MCP server over stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: console or json (overrides config)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newConvertCmd(a),
		newFormatCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.noColor {
		color.NoColor = true
	}

	a.cfg = cfg
	a.logger = logging.New(cfg.Log, cmd.ErrOrStderr())
	return nil
}
