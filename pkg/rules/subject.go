package rules

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

// LoadSubject decodes a JSON or YAML document into a validator.Map.
func LoadSubject(ctx context.Context, path string) (validator.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSubject, err)
	}
	return DecodeSubject(data, format)
}

// DecodeSubject decodes a single top-level object into a validator.Map.
//
// Numbers that do not fit a native integer are kept as json.Number with their
// original text, in both formats, so large or fractional values are checked
// exactly instead of through a rounded float64. Trailing data after the
// object is an error.
func DecodeSubject(data []byte, format Format) (validator.Map, error) {
	var (
		doc map[string]any
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = decodeYAMLSubject(data)
	case FormatJSON:
		doc, err = decodeJSONSubject(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToParseSubject, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is empty or not an object", ErrFailedToParseSubject)
	}
	return validator.Map(doc), nil
}

func decodeJSONSubject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}
	return doc, nil
}

func decodeYAMLSubject(data []byte) (map[string]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("subject must be a single YAML document")
	}

	v, err := yamlValue(&root)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value is %T, not a mapping", v)
	}
	return doc, nil
}

// yamlValue converts a node tree the way yaml.v3 decodes into any, except
// that numeric scalars yaml.v3 would round to float64 keep their text.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		if err := yamlMapping(n, out); err != nil {
			return nil, err
		}
		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)
	}
}

func yamlMapping(n *yaml.Node, out map[string]any) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]

		if key.ShortTag() == "!!merge" {
			if err := yamlMerge(val, out); err != nil {
				return err
			}
			continue
		}

		var name string
		if err := key.Decode(&name); err != nil {
			return fmt.Errorf("line %d: mapping key must be a string: %w", key.Line, err)
		}
		v, err := yamlValue(val)
		if err != nil {
			return err
		}
		out[name] = v
	}
	return nil
}

// yamlMerge applies a "<<" merge key. Keys already set on the mapping win.
func yamlMerge(n *yaml.Node, out map[string]any) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	var sources []*yaml.Node
	switch n.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{n}
	case yaml.SequenceNode:
		sources = n.Content
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}

	for _, src := range sources {
		if src.Kind == yaml.AliasNode {
			src = src.Alias
		}
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		merged := make(map[string]any, len(src.Content)/2)
		if err := yamlMapping(src, merged); err != nil {
			return err
		}
		for k, v := range merged {
			if _, set := out[k]; !set {
				out[k] = v
			}
		}
	}
	return nil
}

func yamlScalar(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	if _, isFloat := v.(float64); !isFloat {
		return v, nil
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		if _, exact := new(big.Rat).SetString(n.Value); exact {
			return json.Number(n.Value), nil
		}
	}
	return v, nil
}
