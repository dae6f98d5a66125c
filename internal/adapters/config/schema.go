package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/zerr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaBytes []byte

const schemaURL = "mkgendocs.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	errCompile     error
	printer        = message.NewPrinter(language.English)
)

// Manifest is the on-disk shape of mkgendocs.yml.
type Manifest struct {
	SourcesDir        string       `yaml:"sources_dir"`
	Templates         string       `yaml:"templates"`
	Repo              string       `yaml:"repo"`
	Version           string       `yaml:"version"`
	DocstringTemplate string       `yaml:"docstring_template"`
	Readme            string       `yaml:"readme"`
	Contributing      string       `yaml:"contributing"`
	ExamplesDir       string       `yaml:"examples_dir"`
	Docstring         DocstringDTO `yaml:"docstring"`
	Pages             []PageDTO    `yaml:"pages"`
}

// DocstringDTO toggles docstring checks.
type DocstringDTO struct {
	CheckArgs           bool `yaml:"check_args"`
	OverrideAnnotations bool `yaml:"override_annotations"`
}

// PageDTO is a single page entry.
type PageDTO struct {
	Page      string     `yaml:"page"`
	Source    string     `yaml:"source"`
	Index     bool       `yaml:"index"`
	Classes   []ClassDTO `yaml:"classes"`
	Functions []string   `yaml:"functions"`
}

// ClassDTO is a class entry: either a bare name or a single-key mapping from
// the name to its method list.
type ClassDTO struct {
	Name    string
	Methods []string
}

// UnmarshalYAML decodes both class entry forms.
func (c *ClassDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.Name = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return zerr.With(zerr.New("class entry must have exactly one key"), "line", node.Line)
		}
		c.Name = node.Content[0].Value
		return node.Content[1].Decode(&c.Methods)
	default:
		return zerr.With(zerr.New("class entry must be a name or a mapping"), "line", node.Line)
	}
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			errCompile = zerr.Wrap(err, "failed to unmarshal schema")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			errCompile = zerr.Wrap(err, "failed to add schema resource")
			return
		}
		compiledSchema, errCompile = c.Compile(schemaURL)
		if errCompile != nil {
			errCompile = zerr.Wrap(errCompile, "failed to compile schema")
		}
	})
	return compiledSchema, errCompile
}

// validate checks the decoded YAML tree against the manifest schema and
// returns one "<location>: <message>" line per violation.
func validate(raw any) ([]string, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to convert manifest to JSON")
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to prepare manifest for validation")
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, zerr.Wrap(err, "unexpected validation error")
	}

	var issues []string
	seen := make(map[string]bool)
	collectIssues(ve, func(issue string) {
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	})
	if len(issues) == 0 {
		issues = append(issues, ve.Error())
	}
	return issues, nil
}

func collectIssues(ve *jsonschema.ValidationError, add func(string)) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, add)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}
	location := "/" + strings.Join(ve.InstanceLocation, "/")
	add(location + ": " + ve.ErrorKind.LocalizedString(printer))
}
