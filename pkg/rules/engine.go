package rules

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/fieldcheck/pkg/i18n"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

// Engine evaluates a compiled rule set against subjects. It is immutable
// after construction and safe for concurrent use.
type Engine struct {
	rules      []compiledRule
	translator *i18n.Translator
	console    *logger.Console
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTranslator renders failure messages through t instead of the embedded catalog.
func WithTranslator(t *i18n.Translator) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.translator = t
		}
	}
}

// WithConsole logs every rule outcome through c. Passing rules are logged at
// debug level, failures at info.
func WithConsole(c *logger.Console) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.console = c
		}
	}
}

// NewEngine compiles set. Any invalid definition fails construction.
func NewEngine(ctx context.Context, set Set, opts ...EngineOption) (*Engine, error) {
	compiled, err := set.compile()
	if err != nil {
		return nil, err
	}

	e := &Engine{rules: compiled}
	for _, opt := range opts {
		opt(e)
	}

	if e.translator == nil {
		t, err := DefaultTranslator(ctx, nil)
		if err != nil {
			return nil, err
		}
		e.translator = t
	}
	if e.console == nil {
		discard := slog.New(slog.NewTextHandler(io.Discard, nil))
		e.console = logger.NewConsole("rules", "", logger.WithConsoleOutput(io.Discard), logger.WithConsoleLogger(discard))
	}
	return e, nil
}

// Result is the outcome of one rule.
type Result struct {
	Field       string
	DisplayName string
	Outcome     validator.Outcome
	// Message is the localized failure message; empty for passing rules.
	Message string
}

// Report collects the results of every rule, in rule order.
type Report struct {
	Locale  string
	Results []Result
}

// Valid reports whether every rule passed.
func (r Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Outcome.Valid() {
			return false
		}
	}
	return true
}

// Failures returns the failing results.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Outcome.Valid() {
			out = append(out, res)
		}
	}
	return out
}

// Validate evaluates every rule against subject. The target of a rule is the
// subject's value for its field, or null when the field is missing.
// Messages are rendered in the locale carried by ctx (see i18n.SetLocale).
//
// The returned error is nil when all rules pass, or validator.ValidationErrors
// holding the localized messages otherwise.
func (e *Engine) Validate(ctx context.Context, subject validator.Subject) (Report, error) {
	if subject == nil {
		return Report{}, validator.ErrNilSubject
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	lang := e.translator.Match(i18n.GetLocale(ctx))
	report := Report{Locale: lang, Results: make([]Result, 0, len(e.rules))}
	checks := make([]validator.Rule, 0, len(e.rules))

	for _, rule := range e.rules {
		target, _ := subject.Lookup(rule.def.Field)
		outcome := rule.comparator.Evaluate(target, subject)

		res := Result{
			Field:       rule.def.Field,
			DisplayName: rule.def.Label(),
			Outcome:     outcome,
		}

		ve := outcome.ValidationError(rule.def.Field, rule.def.Label())
		if !outcome.Valid() {
			ve.Message = e.message(lang, rule.def, ve)
			res.Message = ve.Message
		}
		report.Results = append(report.Results, res)
		checks = append(checks, validator.Rule{Check: outcome.Valid, Error: ve})

		e.log(ctx, rule.def, outcome)
	}

	return report, validator.Apply(checks...)
}

func (e *Engine) message(lang string, def Definition, ve validator.ValidationError) string {
	if def.Message != "" && ve.Code == validator.ReasonComparisonFailed.String() {
		return e.translator.Renderd(lang, def.Message, def.Message, ve.TranslationValues)
	}
	return e.translator.Renderd(lang, ve.TranslationKey, ve.Message, ve.TranslationValues)
}

func (e *Engine) log(ctx context.Context, def Definition, outcome validator.Outcome) {
	level := slog.LevelDebug
	msg := "rule passed"
	if !outcome.Valid() {
		level = slog.LevelInfo
		msg = "rule failed"
	}

	args := []any{
		logger.Field(def.Field),
		logger.Reason(outcome.Reason.String()),
		logger.Fields(def.Sum),
		logger.Property(outcome.Field),
	}
	if outcome.Reason == validator.ReasonNone || outcome.Reason == validator.ReasonComparisonFailed {
		args = append(args, logger.Comparison(outcome.Target, outcome.Sum))
	}
	e.console.LogContext(ctx, level, msg, args...)
}
