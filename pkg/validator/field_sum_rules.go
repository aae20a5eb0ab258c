package validator

import (
	"fmt"
	"slices"
)

// Reason classifies the outcome of a field-sum comparison.
type Reason int

const (
	// ReasonNone marks a successful comparison.
	ReasonNone Reason = iota
	// ReasonUnknownProperty: a referenced field does not exist on the subject.
	ReasonUnknownProperty
	// ReasonNullOrInvalidProperty: a referenced field is null or not a whole number.
	ReasonNullOrInvalidProperty
	// ReasonComparisonFailed: the target is less than the sum of the referenced fields.
	ReasonComparisonFailed
	// ReasonInvalidTarget: the value under test is null or not a whole number.
	ReasonInvalidTarget
	// ReasonSumOverflow: adding a referenced field overflowed int64.
	ReasonSumOverflow
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "valid"
	case ReasonUnknownProperty:
		return "unknown_property"
	case ReasonNullOrInvalidProperty:
		return "null_property"
	case ReasonComparisonFailed:
		return "gte_sum"
	case ReasonInvalidTarget:
		return "invalid_target"
	case ReasonSumOverflow:
		return "sum_overflow"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// TranslationKey returns the message key used for this reason.
func (r Reason) TranslationKey() string {
	return "validation." + r.String()
}

// FieldReference is the ordered, non-empty list of sibling fields to sum.
type FieldReference []string

// NewFieldReference copies names into a FieldReference, rejecting an empty
// list or any empty name.
func NewFieldReference(names ...string) (FieldReference, error) {
	if len(names) == 0 {
		return nil, ErrEmptyFieldReference
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyFieldName, i)
		}
	}
	return FieldReference(slices.Clone(names)), nil
}

// Names returns a copy of the referenced field names.
func (r FieldReference) Names() []string {
	return slices.Clone(r)
}

// Outcome is the result of one comparison. Field names the offending property
// for unknown/null/overflow failures. Target and Sum are set once every
// reference resolved.
type Outcome struct {
	Reason Reason
	Field  string
	Target int64
	Sum    int64
}

func (o Outcome) Valid() bool {
	return o.Reason == ReasonNone
}

// ValidationError renders the outcome for the given target field.
// displayName is used in the comparison message; it falls back to field.
// A valid outcome yields the zero ValidationError.
func (o Outcome) ValidationError(field, displayName string) ValidationError {
	if o.Valid() {
		return ValidationError{}
	}
	if displayName == "" {
		displayName = field
	}

	values := map[string]any{
		"field":    displayName,
		"property": o.Field,
	}

	var msg string
	switch o.Reason {
	case ReasonUnknownProperty:
		msg = fmt.Sprintf("unknown property %s", o.Field)
	case ReasonNullOrInvalidProperty:
		msg = fmt.Sprintf("value of property %s is null or not a whole number", o.Field)
	case ReasonInvalidTarget:
		values["property"] = field
		msg = fmt.Sprintf("%s must be a whole number", displayName)
	case ReasonSumOverflow:
		msg = fmt.Sprintf("sum overflows at property %s", o.Field)
	case ReasonComparisonFailed:
		values["value"] = o.Target
		values["sum"] = o.Sum
		msg = fmt.Sprintf("%s must be greater than or equal to %d, got %d", displayName, o.Sum, o.Target)
	default:
		msg = "invalid value"
	}

	return ValidationError{
		Field:             field,
		Code:              o.Reason.String(),
		Message:           msg,
		TranslationKey:    o.Reason.TranslationKey(),
		TranslationValues: values,
	}
}

// EvaluateSum checks that target >= the sum of the fields named by ref on subject.
//
// References resolve in order and the first unknown, null or overflowing one
// stops evaluation. The target is only inspected after every reference
// resolved, so structural problems are reported regardless of its value.
// An empty ref sums to zero; use NewFieldReference to rule that out.
func EvaluateSum(target any, subject Subject, ref FieldReference) Outcome {
	var sum int64
	for _, name := range ref {
		raw, ok := subject.Lookup(name)
		if !ok {
			return Outcome{Reason: ReasonUnknownProperty, Field: name}
		}
		v, ok := AsInt64(raw)
		if !ok {
			return Outcome{Reason: ReasonNullOrInvalidProperty, Field: name}
		}
		if sum, ok = addInt64(sum, v); !ok {
			return Outcome{Reason: ReasonSumOverflow, Field: name}
		}
	}

	value, ok := AsInt64(target)
	if !ok {
		return Outcome{Reason: ReasonInvalidTarget, Sum: sum}
	}
	if value >= sum {
		return Outcome{Reason: ReasonNone, Target: value, Sum: sum}
	}
	return Outcome{Reason: ReasonComparisonFailed, Target: value, Sum: sum}
}

// FieldSumComparator validates a target value against the sum of a fixed set
// of sibling fields. It is immutable and safe for concurrent use.
type FieldSumComparator struct {
	ref FieldReference
}

// NewFieldSumComparator builds a comparator for the given field names.
// Misconfiguration fails here rather than on first use.
func NewFieldSumComparator(names ...string) (*FieldSumComparator, error) {
	ref, err := NewFieldReference(names...)
	if err != nil {
		return nil, err
	}
	return &FieldSumComparator{ref: ref}, nil
}

// MustFieldSumComparator is like NewFieldSumComparator but panics on error.
func MustFieldSumComparator(names ...string) *FieldSumComparator {
	c, err := NewFieldSumComparator(names...)
	if err != nil {
		panic(fmt.Errorf("validator: %w", err))
	}
	return c
}

// Reference returns a copy of the comparator's field reference.
func (c *FieldSumComparator) Reference() FieldReference {
	return slices.Clone(c.ref)
}

func (c *FieldSumComparator) Evaluate(target any, subject Subject) Outcome {
	return EvaluateSum(target, subject, c.ref)
}

// Rule adapts the comparator to Apply for the named target field.
func (c *FieldSumComparator) Rule(field, displayName string, value any, subject Subject) Rule {
	outcome := c.Evaluate(value, subject)
	return Rule{
		Check: outcome.Valid,
		Error: outcome.ValidationError(field, displayName),
	}
}

// GreaterThanOrEqualToSum validates that value is greater than or equal to the
// sum of the named fields on subject. An empty or invalid list of names is a
// programming error and panics.
func GreaterThanOrEqualToSum(field string, value any, subject Subject, names ...string) Rule {
	return MustFieldSumComparator(names...).Rule(field, "", value, subject)
}
