package rules_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/rules"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

func TestLoadSubject(t *testing.T) {
	ctx := context.Background()

	t.Run("json keeps numbers exact", func(t *testing.T) {
		subject, err := rules.LoadSubject(ctx, "testdata/invoice_ok.json")
		require.NoError(t, err)
		assert.Equal(t, json.Number("120"), subject["total"])
	})

	t.Run("yaml", func(t *testing.T) {
		subject, err := rules.LoadSubject(ctx, "testdata/invoice_bad.yaml")
		require.NoError(t, err)
		v, ok := subject.Lookup("booked")
		assert.True(t, ok)
		assert.Nil(t, v)
		assert.Equal(t, 100, subject["total"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := rules.LoadSubject(ctx, "testdata/missing.json")
		assert.ErrorIs(t, err, rules.ErrFailedToReadSubject)
	})
}

func TestDecodeSubject(t *testing.T) {
	big := `{"n": 9223372036854775807}`
	subject, err := rules.DecodeSubject([]byte(big), rules.FormatJSON)
	require.NoError(t, err)
	v, ok := validator.AsInt64(subject["n"])
	require.True(t, ok)
	assert.Equal(t, int64(9223372036854775807), v)

	_, err = rules.DecodeSubject([]byte(`[1,2]`), rules.FormatJSON)
	assert.ErrorIs(t, err, rules.ErrFailedToParseSubject)

	_, err = rules.DecodeSubject([]byte(``), rules.FormatYAML)
	assert.ErrorIs(t, err, rules.ErrFailedToParseSubject)
}

func TestDecodeSubject_RejectsTrailingData(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format rules.Format
	}{
		{"json garbage", `{"a":1} trailing`, rules.FormatJSON},
		{"json second object", `{"a":1} {"b":2}`, rules.FormatJSON},
		{"json stray brace", `{"a":1}}`, rules.FormatJSON},
		{"yaml second document", "a: 1\n---\nb: 2\n", rules.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.DecodeSubject([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, rules.ErrFailedToParseSubject)
		})
	}

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		subject, err := rules.DecodeSubject([]byte("{\"a\":1}\n\n"), rules.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, json.Number("1"), subject["a"])
	})
}

func TestDecodeSubject_ExactNumbers(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		want  int64
		valid bool
	}{
		{"yaml int", "a: 42", 42, true},
		{"yaml integral float", "a: 42.0", 42, true},
		{"yaml fraction", "a: 1.5", 0, false},
		{"yaml below min", "a: -9223372036854775809", 0, false},
		{"yaml above max", "a: 9223372036854775808", 0, false},
		{"yaml fraction above float precision", "a: 9007199254740993.5", 0, false},
		{"yaml infinity", "a: .inf", 0, false},
		{"yaml quoted number", `a: "42"`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := rules.DecodeSubject([]byte(tt.data), rules.FormatYAML)
			require.NoError(t, err)
			got, ok := validator.AsInt64(subject["a"])
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("json below min is not a whole number", func(t *testing.T) {
		subject, err := rules.DecodeSubject([]byte(`{"total":0,"a":-9223372036854775809}`), rules.FormatJSON)
		require.NoError(t, err)
		out := validator.EvaluateSum(subject["total"], subject, validator.FieldReference{"a"})
		assert.Equal(t, validator.ReasonNullOrInvalidProperty, out.Reason)
		assert.Equal(t, "a", out.Field)
	})

	t.Run("yaml below min is not a whole number", func(t *testing.T) {
		subject, err := rules.DecodeSubject([]byte("total: 0\na: -9223372036854775809\n"), rules.FormatYAML)
		require.NoError(t, err)
		out := validator.EvaluateSum(subject["total"], subject, validator.FieldReference{"a"})
		assert.Equal(t, validator.ReasonNullOrInvalidProperty, out.Reason)
	})
}

func TestDecodeSubject_YAMLStructure(t *testing.T) {
	data := `
base: &base
  tax: 20
  shipping: 5
invoice:
  <<: *base
  shipping: 7
  subtotal: 100
items: [1, two, null]
1: numeric key
`
	subject, err := rules.DecodeSubject([]byte(data), rules.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"tax": 20, "shipping": 7, "subtotal": 100}, subject["invoice"])
	assert.Equal(t, []any{1, "two", nil}, subject["items"])
	assert.Equal(t, "numeric key", subject["1"])

	_, err = rules.DecodeSubject([]byte("- 1\n- 2\n"), rules.FormatYAML)
	assert.ErrorIs(t, err, rules.ErrFailedToParseSubject)

	_, err = rules.DecodeSubject([]byte("null\n"), rules.FormatYAML)
	assert.ErrorIs(t, err, rules.ErrFailedToParseSubject)
}
