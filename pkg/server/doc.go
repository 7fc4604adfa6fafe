// Package server exposes schema navigation over HTTP.
//
// Each browsing session owns a [nav.Navigator]. Clients create a session by
// posting a schema document, then send navigation intents (drill, jump,
// back) and receive the resulting view as JSON:
//
//	POST   /sessions                  create from a document body
//	GET    /sessions/{id}             current view
//	POST   /sessions/{id}/drill       {"key": "Child"}
//	POST   /sessions/{id}/jump/{index}
//	POST   /sessions/{id}/back
//	PUT    /sessions/{id}/document    replace the document (resets the trail)
//	DELETE /sessions/{id}
//	GET    /healthz
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code. When a session store is configured the trail
// is saved after every transition, and POST /sessions?resume=true restores
// the latest trail saved for the same document.
package server
