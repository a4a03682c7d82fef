package i18n

import (
	"context"
	"embed"
)

//go:embed locales/*.yaml
var locales embed.FS

// NewCatalog returns a Translator over the built-in validation messages
// (English and Spanish).
func NewCatalog(ctx context.Context, opts ...Option) (*Translator, error) {
	return NewTranslator(ctx, NewFSAdapter(locales, "locales"), opts...)
}
