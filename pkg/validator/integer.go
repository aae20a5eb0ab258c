package validator

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// AsInt64 converts a resolved field value to a whole number.
//
// Integer kinds (including named integer types and non-nil pointers to them)
// convert directly. Unsigned values above math.MaxInt64, floats with a
// fractional part or outside the int64 range, nil, and every other type
// report ok=false. Floats are accepted because decoded JSON and YAML numbers
// may arrive as float64. A json.Number is parsed exactly from its text, so
// "9007199254740993.5" or "-9223372036854775809" are rejected rather than
// rounded.
func AsInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case float64:
		return floatToInt64(x)
	case float32:
		return floatToInt64(float64(x))
	case json.Number:
		return numberToInt64(string(x))
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt64(rv.Float())
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// 2^63 is exactly representable; anything at or above it overflows.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// numberToInt64 parses a decimal number literal exactly. Exponents too large
// to matter are decided without building the value: a nonzero mantissa is
// either fractional or out of range, and a zero mantissa is zero.
func numberToInt64(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if s == "" || strings.Contains(s, "/") {
		return 0, false
	}

	mantissa := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		exp, err := strconv.Atoi(strings.TrimPrefix(s[i+1:], "+"))
		if err != nil {
			return 0, false
		}
		if exp > len(mantissa)+19 || -exp > len(mantissa)+19 {
			if strings.Trim(mantissa, "+-0.") != "" || strings.Trim(mantissa, "+-.") == "" {
				return 0, false
			}
			return 0, true
		}
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	return r.Num().Int64(), true
}

// addInt64 returns a+b and whether the addition stayed within int64.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}
