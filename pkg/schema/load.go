package schema

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/protonav/pkg/cache"
	"github.com/matzehuels/protonav/pkg/errors"
)

// Format identifies the serialization of a schema document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the document format from a file extension.
// Unknown extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q (use json, yaml or toml)", s)
}

// envelope accepts both a bare document and one wrapped under "schema".
type envelope struct {
	Schema      *Document              `json:"schema" yaml:"schema" toml:"schema"`
	Ref         string                 `json:"$ref" yaml:"$ref" toml:"$ref"`
	Definitions map[string]*Definition `json:"definitions" yaml:"definitions" toml:"definitions"`
}

// Parse decodes a schema document from data.
func Parse(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "schema document is empty")
	}

	var env envelope
	var err error
	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(data, &env)
	case FormatYAML:
		err = yaml.Unmarshal(data, &env)
	case FormatTOML:
		_, err = toml.Decode(string(data), &env)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s document", formatName(format))
	}

	doc := env.Schema
	if doc == nil {
		doc = &Document{Ref: env.Ref, Definitions: env.Definitions}
	}
	normalize(doc)
	return doc, nil
}

// LoadFile reads and parses the document at path, choosing the format from
// the file extension.
func LoadFile(path string) (*Document, []byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "schema file %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}

// Fingerprint identifies a document by the hash of its raw bytes.
func Fingerprint(data []byte) string {
	return cache.Hash(data)
}

func normalize(doc *Document) {
	if doc.Definitions == nil {
		doc.Definitions = map[string]*Definition{}
	}
	for key, def := range doc.Definitions {
		if def == nil {
			def = &Definition{}
			doc.Definitions[key] = def
		}
		if def.Properties == nil {
			def.Properties = map[string]*Property{}
		}
		for name, p := range def.Properties {
			if p == nil {
				def.Properties[name] = &Property{}
			}
		}
	}
}

func formatName(f Format) string {
	if f == "" {
		return string(FormatJSON)
	}
	return string(f)
}
