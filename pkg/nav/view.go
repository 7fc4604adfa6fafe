package nav

import "github.com/matzehuels/protonav/pkg/schema"

// View is the read-only projection of a stack over a document.
type View struct {
	// Loaded is false when there is nothing to show: no document, or an
	// empty stack.
	Loaded bool `json:"loaded"`

	// CurrentKey is the last stack entry.
	CurrentKey string `json:"current_key,omitempty"`

	// Definition is the definition at CurrentKey, or nil when the key does
	// not resolve.
	Definition *schema.Definition `json:"definition,omitempty"`

	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	Rows        []Row        `json:"rows"`
}

// Breadcrumb is one entry of the trail. Index is the position to pass to
// JumpTo to return to it.
type Breadcrumb struct {
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Current bool   `json:"current,omitempty"`
}

// Row is one displayed property of the current definition.
type Row struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Link        string `json:"link,omitempty"` // target key, "" when not navigable
	Array       bool   `json:"array,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// HasLink reports whether the row can be drilled into.
func (r Row) HasLink() bool {
	return r.Link != ""
}

// Found reports whether the current key resolved to a definition.
func (v View) Found() bool {
	return v.Definition != nil
}

// Depth returns the number of breadcrumbs.
func (v View) Depth() int {
	return len(v.Breadcrumbs)
}

// Project derives the view for stack over doc. It never fails: a dangling
// current key produces a view without a definition and with no rows.
func Project(stack Stack, doc *schema.Document) View {
	current, ok := stack.Current()
	if !ok || doc == nil {
		return View{Breadcrumbs: []Breadcrumb{}, Rows: []Row{}}
	}

	v := View{
		Loaded:      true,
		CurrentKey:  current,
		Breadcrumbs: make([]Breadcrumb, len(stack)),
		Rows:        []Row{},
	}
	for i, key := range stack {
		v.Breadcrumbs[i] = Breadcrumb{Index: i, Key: key, Current: i == len(stack)-1}
	}

	def, found := doc.Definition(current)
	if !found {
		return v
	}
	v.Definition = def
	v.Rows = Rows(def)
	return v
}

// Rows builds the display rows of def in display order.
func Rows(def *schema.Definition) []Row {
	names := schema.OrderedProperties(def)
	rows := make([]Row, 0, len(names))
	for _, name := range names {
		p := def.Properties[name]
		if p == nil {
			p = &schema.Property{}
		}
		rows = append(rows, Row{
			Name:        name,
			Type:        p.DisplayType(),
			Link:        p.Target(),
			Array:       p.IsArray(),
			Required:    def.IsRequired(name),
			Description: p.Description,
		})
	}
	return rows
}
