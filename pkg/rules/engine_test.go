package rules_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/i18n"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/rules"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

func invoiceSet() rules.Set {
	return rules.Set{Rules: []rules.Definition{
		{Field: "total", DisplayName: "Total amount", Sum: rules.Names{"subtotal", "tax"}},
		{Field: "capacity", Sum: rules.Names{"booked"}},
	}}
}

func newEngine(t *testing.T, set rules.Set, opts ...rules.EngineOption) *rules.Engine {
	t.Helper()
	e, err := rules.NewEngine(context.Background(), set, opts...)
	require.NoError(t, err)
	return e
}

func TestNewEngine_InvalidSet(t *testing.T) {
	_, err := rules.NewEngine(context.Background(), rules.Set{})
	assert.ErrorIs(t, err, rules.ErrEmptyRuleSet)

	_, err = rules.NewEngine(context.Background(), rules.Set{Rules: []rules.Definition{{Field: "a"}}})
	assert.ErrorIs(t, err, rules.ErrInvalidRule)
}

func TestEngine_Validate(t *testing.T) {
	e := newEngine(t, invoiceSet())
	ctx := context.Background()

	t.Run("all rules pass", func(t *testing.T) {
		report, err := e.Validate(ctx, validator.Map{
			"total": 120, "subtotal": 100, "tax": 20, "capacity": 5, "booked": 5,
		})
		require.NoError(t, err)
		assert.True(t, report.Valid())
		assert.Empty(t, report.Failures())
		require.Len(t, report.Results, 2)
		assert.Equal(t, int64(120), report.Results[0].Outcome.Sum)
		assert.Empty(t, report.Results[0].Message)
		assert.Equal(t, "en", report.Locale)
	})

	t.Run("comparison failure", func(t *testing.T) {
		report, err := e.Validate(ctx, validator.Map{
			"total": 100, "subtotal": 100, "tax": 20, "capacity": 5, "booked": 1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.False(t, report.Valid())

		failures := report.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, "total", failures[0].Field)
		assert.Equal(t, validator.ReasonComparisonFailed, failures[0].Outcome.Reason)
		assert.Equal(t, "Total amount must be greater than or equal to 120, got 100", failures[0].Message)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "gte_sum", verrs[0].Code)
		assert.Equal(t, []string{failures[0].Message}, verrs.Get("total"))
	})

	t.Run("every rule is reported", func(t *testing.T) {
		report, err := e.Validate(ctx, validator.Map{
			"total": nil, "subtotal": 1, "tax": 1, "capacity": 5,
		})
		require.Error(t, err)
		failures := report.Failures()
		require.Len(t, failures, 2)
		assert.Equal(t, validator.ReasonInvalidTarget, failures[0].Outcome.Reason)
		assert.Equal(t, "Total amount must be a whole number", failures[0].Message)
		assert.Equal(t, validator.ReasonUnknownProperty, failures[1].Outcome.Reason)
		assert.Equal(t, "Unknown property booked", failures[1].Message)
	})

	t.Run("missing target field is invalid target", func(t *testing.T) {
		report, _ := e.Validate(ctx, validator.Map{"subtotal": 1, "tax": 1, "capacity": 1, "booked": 1})
		require.Len(t, report.Failures(), 1)
		assert.Equal(t, validator.ReasonInvalidTarget, report.Failures()[0].Outcome.Reason)
	})

	t.Run("reference errors win over target errors", func(t *testing.T) {
		report, _ := e.Validate(ctx, validator.Map{"subtotal": nil, "tax": 1, "capacity": 1, "booked": 1})
		require.Len(t, report.Failures(), 1)
		res := report.Failures()[0]
		assert.Equal(t, validator.ReasonNullOrInvalidProperty, res.Outcome.Reason)
		assert.Equal(t, "Value of property subtotal is null or not a whole number", res.Message)
	})

	t.Run("nil subject", func(t *testing.T) {
		_, err := e.Validate(ctx, nil)
		assert.ErrorIs(t, err, validator.ErrNilSubject)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := e.Validate(cctx, validator.Map{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEngine_Locale(t *testing.T) {
	e := newEngine(t, invoiceSet())
	subject := validator.Map{"total": 1, "subtotal": 1, "tax": 1, "capacity": 1, "booked": 1}

	tests := []struct {
		locale string
		lang   string
		msg    string
	}{
		{"de", "de", "Total amount muss größer oder gleich 2 sein, ist aber 1"},
		{"de_AT.UTF-8", "de", "Total amount muss größer oder gleich 2 sein, ist aber 1"},
		{"en-GB", "en", "Total amount must be greater than or equal to 2, got 1"},
		{"ja", "en", "Total amount must be greater than or equal to 2, got 1"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			report, err := e.Validate(i18n.SetLocale(context.Background(), tt.locale), subject)
			require.Error(t, err)
			assert.Equal(t, tt.lang, report.Locale)
			require.Len(t, report.Failures(), 1)
			assert.Equal(t, tt.msg, report.Failures()[0].Message)
		})
	}
}

func TestEngine_CustomMessage(t *testing.T) {
	set := rules.Set{Rules: []rules.Definition{
		{Field: "seats", Sum: rules.Names{"adults", "children"}, Message: "Only %{value} seats for %{sum} guests"},
	}}
	e := newEngine(t, set)

	report, err := e.Validate(context.Background(), validator.Map{"seats": 2, "adults": 2, "children": 1})
	require.Error(t, err)
	assert.Equal(t, "Only 2 seats for 3 guests", report.Failures()[0].Message)

	t.Run("other reasons keep catalog message", func(t *testing.T) {
		report, _ := e.Validate(context.Background(), validator.Map{"seats": 2, "adults": 2})
		assert.Equal(t, "Unknown property children", report.Failures()[0].Message)
	})
}

func TestEngine_TranslatorOverride(t *testing.T) {
	ctx := context.Background()
	tr, err := rules.DefaultTranslator(ctx, []i18n.TranslationAdapter{
		i18n.NewFileAdapter("testdata/messages_override.yaml"),
	})
	require.NoError(t, err)

	e := newEngine(t, invoiceSet(), rules.WithTranslator(tr))
	report, err := e.Validate(ctx, validator.Map{"total": 1, "subtotal": 1, "tax": 1, "capacity": 1, "booked": 1})
	require.Error(t, err)
	assert.Equal(t, "Total amount is too small (1 < 2)", report.Failures()[0].Message)

	t.Run("untouched keys keep embedded text", func(t *testing.T) {
		assert.Equal(t, "Unknown property x", tr.T("en", "validation.unknown_property", "property", "x"))
		assert.True(t, tr.HasTranslation("de", "validation.gte_sum"))
	})
}

func TestEngine_Logging(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))
	console := logger.NewConsole("rules", "", logger.WithConsoleOutput(buf), logger.WithConsoleLogger(log))

	e := newEngine(t, invoiceSet(), rules.WithConsole(console))
	_, err := e.Validate(context.Background(), validator.Map{
		"total": 100, "subtotal": 100, "tax": 20, "capacity": 5, "booked": 5,
	})
	require.Error(t, err)

	var entries []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.Len(t, entries, 2)

	assert.Equal(t, "[rules] rule failed", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "total", entries[0]["field"])
	assert.Equal(t, "gte_sum", entries[0]["reason"])
	assert.Equal(t, map[string]any{"value": float64(100), "sum": float64(120)}, entries[0]["comparison"])

	assert.Equal(t, "[rules] rule passed", entries[1]["msg"])
	assert.Equal(t, "DEBUG", entries[1]["level"])
	assert.Equal(t, "valid", entries[1]["reason"])
}

func TestEngine_StructSubject(t *testing.T) {
	type booking struct {
		Capacity int   `json:"capacity"`
		Booked   *int  `json:"booked"`
		Total    int64 `json:"total"`
		Subtotal int64 `json:"subtotal"`
		Tax      int64 `json:"tax"`
	}
	booked := 4
	subject, err := validator.Struct(booking{Capacity: 3, Booked: &booked, Total: 10, Subtotal: 5, Tax: 5})
	require.NoError(t, err)

	e := newEngine(t, invoiceSet())
	report, err := e.Validate(context.Background(), subject)
	require.Error(t, err)
	require.Len(t, report.Failures(), 1)
	assert.Equal(t, "capacity", report.Failures()[0].Field)
	assert.Equal(t, "capacity must be greater than or equal to 4, got 3", report.Failures()[0].Message)
}

func TestEngine_Concurrent(t *testing.T) {
	e := newEngine(t, invoiceSet())

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locale := "en"
			if i%2 == 0 {
				locale = "de"
			}
			subject := validator.Map{"total": i, "subtotal": 10, "tax": 5, "capacity": 1, "booked": 1}
			report, _ := e.Validate(i18n.SetLocale(context.Background(), locale), subject)
			assert.Equal(t, locale, report.Locale)
			assert.Equal(t, i >= 15, report.Valid())
		}()
	}
	wg.Wait()
}
