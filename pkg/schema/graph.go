package schema

// Edge is a reference from a property of one definition to another definition.
type Edge struct {
	From     string // definition holding the property
	Property string // property name
	To       string // resolved target key
	Array    bool   // reference sits in the property's items
	Missing  bool   // target has no definition in the document
}

// References lists every property reference in the document.
// Definitions are visited in key order and properties in display order.
func References(doc *Document) []Edge {
	var edges []Edge
	for _, key := range doc.Keys() {
		def := doc.Definitions[key]
		for _, name := range OrderedProperties(def) {
			p := def.Properties[name]
			to := p.Target()
			if to == "" {
				// Linked properties sort first, so the rest carry no reference.
				break
			}
			_, ok := doc.Definition(to)
			edges = append(edges, Edge{
				From:     key,
				Property: name,
				To:       to,
				Array:    p.IsArray(),
				Missing:  !ok,
			})
		}
	}
	return edges
}

// Reachable returns the keys reachable from the definition at from, in
// breadth-first order, starting with from itself. Dangling targets are
// included but not expanded.
func Reachable(doc *Document, from string) []string {
	if from == "" {
		return nil
	}
	seen := map[string]bool{from: true}
	order := []string{from}
	for i := 0; i < len(order); i++ {
		def, ok := doc.Definition(order[i])
		if !ok {
			continue
		}
		for _, name := range OrderedProperties(def) {
			to := def.Properties[name].Target()
			if to == "" {
				break
			}
			if !seen[to] {
				seen[to] = true
				order = append(order, to)
			}
		}
	}
	return order
}
