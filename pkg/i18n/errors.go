package i18n

import "errors"

var (
	ErrNilAdapter        = errors.New("i18n: adapter is nil")
	ErrNoTranslations    = errors.New("i18n: no translations found")
	ErrInvalidCatalog    = errors.New("i18n: invalid catalog structure")
	ErrParsingCancelled  = errors.New("i18n: parsing cancelled")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML content")
	ErrFailedToParseJSON = errors.New("i18n: failed to parse JSON content")
	ErrFailedToReadFile  = errors.New("i18n: failed to read catalog file")
	ErrUnsupportedFile   = errors.New("i18n: unsupported catalog file")
)
