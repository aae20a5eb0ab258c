package rules

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

// Format is the encoding of a rule file or subject document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Names is a field reference as written in a rule file: either a single
// string or a list of strings.
type Names []string

func (n *Names) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		*n = Names{name}
		return nil
	}
	var names []string
	if err := node.Decode(&names); err != nil {
		return err
	}
	*n = names
	return nil
}

func (n *Names) UnmarshalJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) > 0 && bytes.TrimSpace(data)[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*n = Names{name}
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*n = names
	return nil
}

// Definition declares that Field must be greater than or equal to the sum of
// the fields listed in Sum.
//
// Message, when set, replaces the comparison-failed message. It may be a
// translation key or a template using %{field} (the display name), %{value}
// and %{sum}.
type Definition struct {
	Field       string `yaml:"field" json:"field"`
	DisplayName string `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Sum         Names  `yaml:"gte_sum" json:"gte_sum"`
	Message     string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Label returns DisplayName, or Field when no display name is set.
func (d Definition) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Field
}

// Set is a rule file.
type Set struct {
	Rules []Definition `yaml:"rules" json:"rules"`
}

// Parse decodes a rule set. Unknown keys are rejected so typos in rule files
// surface instead of silently disabling a rule.
func Parse(data []byte, format Format) (Set, error) {
	var set Set
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil {
			return Set{}, errors.Join(ErrFailedToParseRules, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&set); err != nil {
			return Set{}, errors.Join(ErrFailedToParseRules, err)
		}
	default:
		return Set{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return set, nil
}

// Load reads and parses the rule file at path.
func Load(ctx context.Context, path string) (Set, error) {
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Set{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, errors.Join(ErrFailedToReadRules, err)
	}
	return Parse(data, format)
}

type compiledRule struct {
	def        Definition
	comparator *validator.FieldSumComparator
}

// compile validates every definition and builds its comparator. All problems
// are reported together.
func (s Set) compile() ([]compiledRule, error) {
	if len(s.Rules) == 0 {
		return nil, ErrEmptyRuleSet
	}

	var errs []error
	out := make([]compiledRule, 0, len(s.Rules))
	for i, def := range s.Rules {
		if def.Field == "" {
			errs = append(errs, fmt.Errorf("%w: rule %d: field is required", ErrInvalidRule, i))
			continue
		}
		cmp, err := validator.NewFieldSumComparator(def.Sum...)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: rule %d (%s): %w", ErrInvalidRule, i, def.Field, err))
			continue
		}
		out = append(out, compiledRule{def: def, comparator: cmp})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Validate reports configuration problems without building an engine.
func (s Set) Validate() error {
	_, err := s.compile()
	return err
}
