package rules

import "errors"

var (
	ErrUnsupportedFormat  = errors.New("unsupported rule file format")
	ErrFailedToReadRules  = errors.New("failed to read rule file")
	ErrFailedToParseRules = errors.New("failed to parse rule file")
	ErrInvalidRule        = errors.New("invalid rule definition")
	ErrEmptyRuleSet       = errors.New("rule set has no rules")

	ErrFailedToReadSubject  = errors.New("failed to read subject document")
	ErrFailedToParseSubject = errors.New("failed to parse subject document")
)
