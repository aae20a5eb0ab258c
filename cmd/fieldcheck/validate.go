package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fieldcheck/pkg/i18n"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/rules"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

type validateOptions struct {
	rulesPath string
	locale    string
	messages  []string
}

func newValidateCmd(cfg Config) *cobra.Command {
	opts := &validateOptions{
		locale:   cfg.Locale,
		messages: cfg.Messages,
	}

	cmd := &cobra.Command{
		Use:   "validate --rules FILE SUBJECT...",
		Short: "Validate JSON or YAML documents against a rule file",
		Long: `Decodes every SUBJECT document (format chosen by extension) and
evaluates each rule of the rule file against it. Failures are printed one per
line; the command exits non-zero when any subject fails.

Example:
  fieldcheck validate --rules invoice_rules.yaml --locale de invoices/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			console := newConsole(cfg, cmd.ErrOrStderr())
			return runValidate(cmd.Context(), cmd.OutOrStdout(), console, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.rulesPath, "rules", "r", "", "rule file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&opts.locale, "locale", "l", opts.locale, "message locale")
	cmd.Flags().StringSliceVar(&opts.messages, "messages", opts.messages, "translation files overriding built-in messages")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}

func runValidate(ctx context.Context, out io.Writer, console *logger.Console, opts *validateOptions, subjects []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	set, err := rules.Load(ctx, opts.rulesPath)
	if err != nil {
		return err
	}

	overrides := make([]i18n.TranslationAdapter, 0, len(opts.messages))
	for _, path := range opts.messages {
		overrides = append(overrides, i18n.NewFileAdapter(path))
	}
	translator, err := rules.DefaultTranslator(ctx, overrides)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	engine, err := rules.NewEngine(ctx, set,
		rules.WithTranslator(translator),
		rules.WithConsole(console),
	)
	if err != nil {
		return err
	}

	ctx = i18n.SetLocale(ctx, opts.locale)
	console.Debug("rules loaded", "rules", len(set.Rules), logger.Locale(translator.Match(opts.locale)))

	failed := 0
	for _, path := range subjects {
		ok, err := validateFile(ctx, out, console, engine, path)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}

	if failed > 0 {
		console.Warn("validation finished with failures", "failed", failed, "total", len(subjects))
		return errSubjectsFailed
	}
	console.Info("validation finished", "total", len(subjects))
	return nil
}

func validateFile(ctx context.Context, out io.Writer, console *logger.Console, engine *rules.Engine, path string) (bool, error) {
	console.Time(path)
	defer console.TimeEnd(path)

	subject, err := rules.LoadSubject(ctx, path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	report, err := engine.Validate(ctx, subject)
	if err != nil && !validator.IsValidationError(err) {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if err == nil {
		fmt.Fprintf(out, "PASS %s\n", filepath.ToSlash(path))
		return true, nil
	}

	fmt.Fprintf(out, "FAIL %s\n", filepath.ToSlash(path))
	for _, res := range report.Failures() {
		fmt.Fprintf(out, "  %s [%s]: %s\n", res.Field, res.Outcome.Reason, res.Message)
	}
	return false, nil
}
