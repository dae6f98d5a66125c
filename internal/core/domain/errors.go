package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the configuration file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrInvalidConfig is returned when the configuration does not satisfy the schema.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrInvalidPagePath is returned when a page path is absolute, escapes sources_dir or is not markdown.
	ErrInvalidPagePath = zerr.New("page path must be a relative .md path inside sources_dir")

	// ErrDuplicatePage is returned when two pages write to the same path.
	ErrDuplicatePage = zerr.New("duplicate page")

	// ErrIndexMethodFilter is returned when an index page restricts the methods of a class.
	ErrIndexMethodFilter = zerr.New("index pages do not accept method lists")

	// ErrTemplatesNotFound is returned when the configured templates directory does not exist.
	ErrTemplatesNotFound = zerr.New("templates directory not found")

	// ErrUnsupportedSource is returned when no extractor handles a source file's extension.
	ErrUnsupportedSource = zerr.New("unsupported source file")

	// ErrSourceRead is returned when a source file cannot be read.
	ErrSourceRead = zerr.New("failed to read source file")

	// ErrSourceParse is returned when a source file cannot be parsed.
	ErrSourceParse = zerr.New("failed to parse source file")

	// ErrSymbolNotFound is returned when a configured class, method or function is not defined in its source.
	ErrSymbolNotFound = zerr.New("symbol not found")

	// ErrDocstringSyntax is returned when a docstring section is malformed.
	ErrDocstringSyntax = zerr.New("invalid docstring section")

	// ErrTemplateParse is returned when a symbol template cannot be parsed.
	ErrTemplateParse = zerr.New("failed to parse docstring template")

	// ErrTemplateRender is returned when a symbol template fails to execute.
	ErrTemplateRender = zerr.New("failed to render docstring template")

	// ErrMissingAutogeneratedTag is returned when a page template lacks the {{autogenerated}} tag.
	ErrMissingAutogeneratedTag = zerr.New("page template is missing the " + AutogeneratedTag + " tag")

	// ErrPublishFailed is returned when the site cannot be written to disk.
	ErrPublishFailed = zerr.New("failed to publish documentation")

	// ErrDocsOutOfDate is returned by check when the published documentation differs from the sources.
	ErrDocsOutOfDate = zerr.New("documentation is out of date")

	// ErrStoreReadFailed is returned when the state store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read state store")

	// ErrStoreUnmarshalFailed is returned when the state store cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal state store")

	// ErrStoreMarshalFailed is returned when the state store cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal state store")

	// ErrStoreWriteFailed is returned when the state store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write state store")

	// ErrStoreCreateFailed is returned when the state store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state store directory")

	// ErrGenerationFailed is returned when a generate run fails.
	ErrGenerationFailed = zerr.New("documentation generation failed")
)
