package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLParser reads catalogs shaped as
//
//	en:
//	  validation:
//	    required: "%{field} is required"
type YAMLParser struct{}

// NewYAMLParser creates a YAML catalog parser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return splitLanguages(data)
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	if len(data) == 0 {
		return nil, ErrNoTranslations
	}
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		messages, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q holds %T, want a map", ErrInvalidCatalog, lang, val)
		}
		result[lang] = messages
	}
	return result, nil
}
