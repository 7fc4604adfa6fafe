package schema

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/protonav/pkg/errors"
)

func TestLoadFileFormats(t *testing.T) {
	for _, name := range []string{"protocols.json", "protocols.yaml", "protocols.toml"} {
		t.Run(name, func(t *testing.T) {
			doc, data, err := LoadFile(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if len(data) == 0 {
				t.Error("LoadFile() returned no raw bytes")
			}
			if doc.RootKey() != "Order" {
				t.Errorf("RootKey() = %q, want Order", doc.RootKey())
			}

			order, ok := doc.Definition("Order")
			if !ok {
				t.Fatal("Order definition missing")
			}
			if !order.IsRequired("id") {
				t.Error("id should be required")
			}
			if got := order.Properties["customer"].Target(); got != "Customer" {
				t.Errorf("customer target = %q, want Customer", got)
			}
			if got := order.Properties["lines"].Target(); got != "OrderLine" {
				t.Errorf("lines target = %q, want OrderLine", got)
			}
			for _, key := range []string{"Customer", "OrderLine"} {
				if _, ok := doc.Definition(key); !ok {
					t.Errorf("definition %s missing", key)
				}
			}
		})
	}
}

func TestParseUnwrapsSchemaEnvelope(t *testing.T) {
	wrapped := `{"schema": {"$ref": "#/definitions/A", "definitions": {"A": {}}}}`
	bare := `{"$ref": "#/definitions/A", "definitions": {"A": {}}}`

	for name, input := range map[string]string{"wrapped": wrapped, "bare": bare} {
		doc, err := Parse([]byte(input), FormatJSON)
		if err != nil {
			t.Fatalf("%s: Parse() error: %v", name, err)
		}
		if doc.RootKey() != "A" {
			t.Errorf("%s: RootKey() = %q, want A", name, doc.RootKey())
		}
		if !slices.Equal(doc.Keys(), []string{"A"}) {
			t.Errorf("%s: Keys() = %v, want [A]", name, doc.Keys())
		}
	}
}

func TestParseNormalizesNilMaps(t *testing.T) {
	doc, err := Parse([]byte(`{"definitions": {"A": null, "B": {"properties": {"x": null}}}}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	a, ok := doc.Definition("A")
	if !ok || a.Properties == nil {
		t.Errorf("A = %+v, want empty definition", a)
	}
	b, _ := doc.Definition("B")
	if b.Properties["x"] == nil {
		t.Error("nil property should be replaced by an empty one")
	}
	if doc.RootKey() != "" {
		t.Errorf("RootKey() = %q, want empty", doc.RootKey())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"empty", "", FormatJSON, errors.ErrCodeInvalidInput},
		{"whitespace", "  \n", FormatYAML, errors.ErrCodeInvalidInput},
		{"bad json", "{", FormatJSON, errors.ErrCodeInvalidFormat},
		{"bad yaml", "definitions: [unclosed", FormatYAML, errors.ErrCodeInvalidFormat},
		{"bad toml", "= nope", FormatTOML, errors.ErrCodeInvalidFormat},
		{"unknown format", "{}", Format("xml"), errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadFileUsesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yml")
	if err := os.WriteFile(path, []byte("$ref: '#/definitions/X'\ndefinitions:\n  X: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	doc, _, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if doc.RootKey() != "X" {
		t.Errorf("RootKey() = %q, want X", doc.RootKey())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json": FormatJSON,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a.toml": FormatTOML,
		"a":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, "toml": FormatTOML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte(`{"definitions":{}}`))
	b := Fingerprint([]byte(`{"definitions":{}}`))
	c := Fingerprint([]byte(`{"definitions":{"A":{}}}`))
	if a != b {
		t.Error("Fingerprint should be deterministic")
	}
	if a == c {
		t.Error("different documents should have different fingerprints")
	}
}
