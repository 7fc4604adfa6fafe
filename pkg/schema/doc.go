// Package schema defines the in-memory schema document that protonav browses.
//
// A [Document] is a set of named [Definition] values ("protocols"), each with
// typed properties. A [Property] may point at another definition through a
// reference string of the form "#/definitions/<key>", either directly or one
// level down inside its "items" (the array-of-reference case).
//
// # Reference Resolution
//
// [Resolve] turns a raw reference into a definition key by stripping the
// leading [DefinitionPrefix]. Strings without the prefix pass through
// unchanged, and an empty reference resolves to the empty key:
//
//	schema.Resolve("#/definitions/User") // "User"
//	schema.Resolve("User")               // "User"
//	schema.Resolve("")                   // ""
//
// # Property Ordering
//
// [OrderedProperties] returns a definition's property names in display order:
// properties that link to another definition come first, and names are
// collated within each group.
//
// # Loading
//
// Documents are parsed from JSON, YAML or TOML with [Parse] or [LoadFile].
// A document may also be wrapped in an object under the "schema" key, which
// is how HTTP descriptions usually embed it:
//
//	{"schema": {"$ref": "#/definitions/Root", "definitions": {...}}}
//
// Documents are treated as immutable once loaded. Nothing in this package
// validates that references point at existing definitions; see [References]
// for a way to find dangling ones.
package schema
