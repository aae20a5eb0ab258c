// Command fieldcheck validates JSON and YAML documents against field-sum rule
// files and prints console colors derived from names.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

// errSubjectsFailed signals that validation ran and found failures.
var errSubjectsFailed = errors.New("one or more subjects failed validation")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fieldcheck:", err)
		os.Exit(2)
	}

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSubjectsFailed) {
			fmt.Fprintln(os.Stderr, "fieldcheck:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "fieldcheck",
		Short: "Check that numeric fields cover the sum of their sibling fields",
		Long: `fieldcheck evaluates declarative "greater than or equal to sum" rules
against JSON and YAML documents.

Configuration is read from FIELDCHECK_* environment variables (and .env):
  FIELDCHECK_ENV         development | staging | production
  FIELDCHECK_LOCALE      message locale, e.g. de or de_DE.UTF-8
  FIELDCHECK_LOG_LEVEL   debug | info | warn | error
  FIELDCHECK_LOG_FORMAT  json | text | color
  FIELDCHECK_NO_COLOR    disable colored output
  FIELDCHECK_MESSAGES    comma-separated translation files overriding built-in messages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newValidateCmd(cfg), newColorCmd(cfg))
	return root
}

// newConsole builds the labeled console used for progress and timing output.
func newConsole(cfg Config, w io.Writer) *logger.Console {
	renderer := lipgloss.NewRenderer(w)
	noColor := cfg.NoColor || renderer.ColorProfile() == termenv.Ascii
	if cfg.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "fieldcheck"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(w),
	}
	if format := cfg.logFormat(); format == logger.FormatColor {
		opts = append(opts, logger.WithColorFormatter(noColor))
	} else {
		opts = append(opts, logger.WithFormat(format))
	}

	return logger.NewAutoConsole("fieldcheck",
		logger.WithConsoleOutput(w),
		logger.WithConsoleRenderer(renderer),
		logger.WithConsoleLogger(logger.New(opts...)),
	)
}
