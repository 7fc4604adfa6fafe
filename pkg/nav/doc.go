// Package nav implements breadcrumb navigation over a schema document.
//
// The state of a browsing session is a [Stack] of definition keys: the root
// definition first, the definition currently shown last. Three transitions
// change it:
//
//   - [Initialize] resets the stack to the document's root key
//   - [Stack.Drill] appends a definition key (following a property link)
//   - [Stack.JumpTo] truncates the stack to a breadcrumb position
//
// Transitions never fail and never mutate their receiver. Drilling into a key
// that has no definition is allowed; [Project] then yields a view with no
// definition and no rows instead of an error.
//
// # Views
//
// [Project] derives the read-only [View] a presentation layer renders: the
// current key and definition, one [Breadcrumb] per stack entry, and one [Row]
// per property in display order.
//
// # Navigator
//
// [Navigator] owns a stack and the document it browses. It serializes all
// transitions behind a mutex, resets the stack whenever a different document
// is supplied, and returns a fresh View after every transition:
//
//	n := nav.NewNavigator()
//	n.SetDocument(doc)
//	v := n.Drill("Child")
//	v = n.JumpTo(0)
package nav
