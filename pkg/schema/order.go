package schema

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collationTag is the locale used to compare property names.
var collationTag = language.English

// OrderedProperties returns the property names of def in display order.
//
// Properties that link to another definition (directly or through their
// array items) come before properties that do not. Within each group names
// are collated, with a byte-wise comparison breaking remaining ties so the
// result is deterministic. A nil definition yields an empty slice.
func OrderedProperties(def *Definition) []string {
	if def == nil || len(def.Properties) == 0 {
		return []string{}
	}

	names := slices.Collect(maps.Keys(def.Properties))

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(collationTag)
	slices.SortFunc(names, func(a, b string) int {
		return compareProperties(col, a, def.Properties[a], b, def.Properties[b])
	})
	return names
}

func compareProperties(col *collate.Collator, a string, pa *Property, b string, pb *Property) int {
	linkA, linkB := pa.Target() != "", pb.Target() != ""
	switch {
	case linkA && !linkB:
		return -1
	case linkB && !linkA:
		return 1
	}
	if c := col.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
