// Package pkg provides the libraries behind protonav, a browser for schema
// documents whose definitions reference each other.
//
// # Overview
//
// A schema document names a root definition with "$ref" and holds a map of
// definitions. Properties link to other definitions through
// "#/definitions/<key>" references, either directly or through array items.
// The pkg directory is organized into these areas:
//
//  1. [schema] - Document model, loading (JSON, YAML, TOML), reference
//     resolution, property ordering and the reference graph
//  2. [nav] - The navigation stack, its transitions and the view projection
//  3. [session] and [cache] - Persisted breadcrumb trails (file or Redis)
//  4. [server] - The navigation HTTP API
//  5. [render/nodelink] - Graphviz export of the reference graph
//
// # Architecture
//
//	schema file
//	     ↓
//	[schema] package (parse + normalize)
//	     ↓
//	[nav] package (Initialize / Drill / JumpTo → View)
//	     ↓
//	terminal browser, printed view, or HTTP response
//
// # Quick Start
//
//	doc, _, err := schema.LoadFile("api.json")
//	if err != nil {
//	    return err
//	}
//	n := nav.NewNavigator(nav.WithDocument(doc))
//	v := n.Drill("Customer")
//	for _, row := range v.Rows {
//	    fmt.Println(row.Name, row.Type, row.Link)
//	}
//
// # Error Handling
//
// Navigation never fails; unknown keys produce a view with no definition.
// Loading, session storage and HTTP input return [errors.Error] values
// carrying a machine-readable [errors.Code].
package pkg
