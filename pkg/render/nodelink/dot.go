package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/protonav/pkg/schema"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Root limits the diagram to definitions reachable from this key.
	// Empty draws every definition.
	Root string

	// Detailed includes scalar properties in node labels.
	// When false, only the definition key is shown.
	Detailed bool
}

// ToDOT converts the reference graph of doc to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(doc *schema.Document, opts Options) string {
	keys := doc.Keys()
	if opts.Root != "" {
		keys = schema.Reachable(doc, opts.Root)
	}
	include := make(map[string]bool, len(keys))
	for _, k := range keys {
		include[k] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11];\n")
	buf.WriteString("\n")

	for _, key := range keys {
		def, found := doc.Definition(key)
		attrs := fmtAttrs(key, def, found, opts.Detailed, key == doc.RootKey())
		fmt.Fprintf(&buf, "  %q [%s];\n", key, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range schema.References(doc) {
		if !include[e.From] {
			continue
		}
		if !include[e.To] {
			if !e.Missing {
				continue
			}
			// Dangling targets are not definition keys; draw them on demand.
			fmt.Fprintf(&buf, "  %q [%s];\n", e.To, strings.Join(missingAttrs(e.To), ", "))
			include[e.To] = true
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(key string, def *schema.Definition, found, detailed, root bool) []string {
	if !found {
		return missingAttrs(key)
	}
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(key, def, detailed))}
	if root {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func fmtLabel(key string, def *schema.Definition, detailed bool) string {
	if !detailed {
		return key
	}
	var lines []string
	for _, name := range schema.OrderedProperties(def) {
		p := def.Properties[name]
		if p.Target() != "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", name, p.DisplayType()))
	}
	if len(lines) == 0 {
		return key
	}
	return key + "\n" + strings.Join(lines, "\n")
}

func missingAttrs(key string) []string {
	return []string{
		fmt.Sprintf("label=%q", key),
		"style=\"rounded,filled,dashed\"",
		"fillcolor=lightgrey",
		"fontcolor=gray30",
	}
}

func edgeAttrs(e schema.Edge) []string {
	attrs := []string{fmt.Sprintf("label=%q", e.Property)}
	if e.Array {
		attrs = append(attrs, "arrowhead=crow")
	}
	if e.Missing {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg header with a plain
// viewBox so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
