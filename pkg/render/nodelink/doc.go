// Package nodelink renders the reference graph of a schema document as a
// node-link diagram.
//
// # Overview
//
// Each definition becomes a box and each property reference an arrow
// labelled with the property name. Array references ("items") are drawn with
// a crow-style arrowhead, and references to keys that have no definition are
// drawn as dashed grey boxes so dangling links stand out.
//
// # Usage
//
// Convert a document to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Root: doc.RootKey()})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := nodelink.RenderPNG(dot)
//
// # Options
//
//   - Root: when set, only definitions reachable from Root are drawn
//   - Detailed: node labels list the definition's scalar properties too
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
