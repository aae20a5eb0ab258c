package i18n

import "errors"

var (
	ErrNilAdapter = errors.New("translation adapter is nil")

	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")

	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	ErrUnsupportedFormat = errors.New("unsupported translation file format")

	ErrLoadingCancelled = errors.New("loading translations cancelled")
	ErrFailedToReadFile = errors.New("failed to read translation file")
	ErrFailedToReadDir  = errors.New("failed to read translation directory")
	ErrNoTranslations   = errors.New("no translations found")

	ErrInvalidLanguage = errors.New("invalid language code")
)
