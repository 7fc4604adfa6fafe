package schema

import (
	"maps"
	"slices"
)

// Document is a schema with a root reference and a set of named definitions.
type Document struct {
	// Ref points at the root definition, e.g. "#/definitions/Root".
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty" toml:"$ref,omitempty"`

	// Definitions maps definition keys to their shapes.
	Definitions map[string]*Definition `json:"definitions" yaml:"definitions" toml:"definitions"`
}

// Definition is a named schema shape with a set of properties.
type Definition struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Type        string               `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Required    []string             `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Properties  map[string]*Property `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// Property is a single field of a definition.
//
// At most one of Ref and Items.Ref is meaningful. When Type is empty the
// property is displayed as an "object".
type Property struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty" toml:"$ref,omitempty"`
	Items       *Items `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// Items describes the element type of an array property.
type Items struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Ref  string `json:"$ref,omitempty" yaml:"$ref,omitempty" toml:"$ref,omitempty"`
}

// RootKey returns the definition key the root reference resolves to.
func (d *Document) RootKey() string {
	if d == nil {
		return ""
	}
	return Resolve(d.Ref)
}

// Definition looks up a definition by key.
// It reports false for a nil document or an unknown key.
func (d *Document) Definition(key string) (*Definition, bool) {
	if d == nil {
		return nil, false
	}
	def, ok := d.Definitions[key]
	if !ok || def == nil {
		return nil, false
	}
	return def, true
}

// Keys returns all definition keys in sorted order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.Definitions))
}

// Property looks up a property by name.
func (d *Definition) Property(name string) (*Property, bool) {
	if d == nil {
		return nil, false
	}
	p, ok := d.Properties[name]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// IsRequired reports whether name is listed as a required property.
func (d *Definition) IsRequired(name string) bool {
	if d == nil {
		return false
	}
	return slices.Contains(d.Required, name)
}

// DisplayType returns the property's type, defaulting to "object".
func (p *Property) DisplayType() string {
	if p == nil || p.Type == "" {
		return DefaultType
	}
	return p.Type
}

// RawRef returns the reference string carried by the property, preferring the
// direct reference over the array item reference.
func (p *Property) RawRef() string {
	if p == nil {
		return ""
	}
	if p.Ref != "" {
		return p.Ref
	}
	if p.Items != nil {
		return p.Items.Ref
	}
	return ""
}

// Target returns the definition key this property links to, or "" when it
// carries no reference.
func (p *Property) Target() string {
	return Resolve(p.RawRef())
}

// IsArray reports whether the property links through its array items.
func (p *Property) IsArray() bool {
	return p != nil && p.Ref == "" && p.Items != nil && p.Items.Ref != ""
}

// DefaultType is displayed for properties that declare no type.
const DefaultType = "object"
