package i18n_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

func TestFileAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("yaml", func(t *testing.T) {
		got, err := i18n.NewFileAdapter(filepath.Join("testdata", "extra.yaml")).Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, got, "fr")
	})

	t.Run("json", func(t *testing.T) {
		got, err := i18n.NewFileAdapter(filepath.Join("testdata", "messages.json")).Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, got, "de")
	})

	t.Run("invalid structure", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(filepath.Join("testdata", "invalid.yaml")).Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(filepath.Join("testdata", "nope.yaml")).Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := i18n.NewFileAdapter("catalog.toml").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrUnsupportedFile)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := i18n.NewFileAdapter(filepath.Join("testdata", "extra.yaml")).Load(cctx)
		assert.ErrorIs(t, err, i18n.ErrParsingCancelled)
	})
}

func TestFSAdapter(t *testing.T) {
	ctx := context.Background()

	fsys := fstest.MapFS{
		"locales/a.yaml":    {Data: []byte("en:\n  hello: Hello\n")},
		"locales/b.yml":     {Data: []byte("en:\n  bye: Bye\nes:\n  hello: Hola\n")},
		"locales/notes.txt": {Data: []byte("ignored")},
	}

	got, err := i18n.NewFSAdapter(fsys, "locales").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got["en"]["hello"])
	assert.Equal(t, "Bye", got["en"]["bye"])
	assert.Equal(t, "Hola", got["es"]["hello"])

	_, err = i18n.NewFSAdapter(fstest.MapFS{"x/readme.md": {}}, "x").Load(ctx)
	assert.ErrorIs(t, err, i18n.ErrNoTranslations)

	_, err = i18n.NewFSAdapter(fsys, "missing").Load(ctx)
	assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
}
