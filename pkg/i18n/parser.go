package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes translation file content into language -> key -> value maps.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension reports whether the parser handles ext.
	// The leading dot is optional.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser chosen by file extension, or nil.
func NewParserForFile(filename string) Parser {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")

	switch strings.ToLower(ext) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}
