package schema

import "strings"

// DefinitionPrefix is the document-local prefix of every definition reference.
const DefinitionPrefix = "#/definitions/"

// Resolve converts a raw reference into a definition key.
//
// The prefix is stripped only when the reference starts with it. Anything
// else, including malformed references, is returned unchanged so callers can
// still display it. An empty reference resolves to the empty key.
func Resolve(ref string) string {
	return strings.TrimPrefix(ref, DefinitionPrefix)
}

// RefTo builds the reference string that points at key.
func RefTo(key string) string {
	return DefinitionPrefix + key
}
