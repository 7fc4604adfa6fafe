package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/protonav/pkg/cache"
	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/observability"
	"github.com/matzehuels/protonav/pkg/session"
)

const scenarioJSON = `{
  "$ref": "#/definitions/Root",
  "definitions": {
    "Root": {"properties": {"child": {"$ref": "#/definitions/Child"}, "name": {"type": "string"}}},
    "Child": {"properties": {}}
  }
}`

func newTestServer(t *testing.T, store session.Store) *httptest.Server {
	t.Helper()
	s := New(Options{Store: store, Logger: log.New(io.Discard)})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func decodeSession(t *testing.T, data []byte) sessionResponse {
	t.Helper()
	var resp sessionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode response %s: %v", data, err)
	}
	return resp
}

func crumbs(v sessionResponse) []string {
	keys := make([]string, len(v.View.Breadcrumbs))
	for i, b := range v.View.Breadcrumbs {
		keys[i] = b.Key
	}
	return keys
}

func createSession(t *testing.T, ts *httptest.Server, query string) sessionResponse {
	t.Helper()
	status, data := do(t, http.MethodPost, ts.URL+"/sessions"+query, scenarioJSON)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", status, data)
	}
	return decodeSession(t, data)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	status, data := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if status != http.StatusOK || !bytes.Contains(data, []byte(`"ok"`)) {
		t.Errorf("healthz = %d %s", status, data)
	}
}

func TestNavigationFlow(t *testing.T) {
	ts := newTestServer(t, nil)
	created := createSession(t, ts, "")

	if created.View.CurrentKey != "Root" {
		t.Fatalf("CurrentKey = %q, want Root", created.View.CurrentKey)
	}
	if len(created.View.Rows) != 2 || created.View.Rows[0].Link != "Child" {
		t.Fatalf("Rows = %+v, want child first", created.View.Rows)
	}

	base := ts.URL + "/sessions/" + created.ID

	status, data := do(t, http.MethodPost, base+"/drill", `{"key": "Child"}`)
	if status != http.StatusOK {
		t.Fatalf("drill status = %d, body %s", status, data)
	}
	if got := crumbs(decodeSession(t, data)); strings.Join(got, ",") != "Root,Child" {
		t.Errorf("breadcrumbs after drill = %v", got)
	}

	status, data = do(t, http.MethodPost, base+"/jump/0", "")
	if status != http.StatusOK {
		t.Fatalf("jump status = %d, body %s", status, data)
	}
	if got := crumbs(decodeSession(t, data)); strings.Join(got, ",") != "Root" {
		t.Errorf("breadcrumbs after jump = %v", got)
	}

	status, data = do(t, http.MethodGet, base, "")
	if status != http.StatusOK || decodeSession(t, data).View.CurrentKey != "Root" {
		t.Errorf("view = %d %s", status, data)
	}
}

func TestDanglingDrill(t *testing.T) {
	ts := newTestServer(t, nil)
	created := createSession(t, ts, "")

	status, data := do(t, http.MethodPost, ts.URL+"/sessions/"+created.ID+"/drill", `{"key": "Ghost"}`)
	if status != http.StatusOK {
		t.Fatalf("drill status = %d, body %s", status, data)
	}
	v := decodeSession(t, data).View
	if v.Definition != nil || len(v.Rows) != 0 || v.CurrentKey != "Ghost" {
		t.Errorf("view = %+v, want dangling Ghost with no rows", v)
	}
}

func TestJumpOutOfRangeIsNoop(t *testing.T) {
	ts := newTestServer(t, nil)
	created := createSession(t, ts, "")
	base := ts.URL + "/sessions/" + created.ID

	do(t, http.MethodPost, base+"/drill", `{"key": "Child"}`)
	for _, index := range []string{"5", "-1"} {
		status, data := do(t, http.MethodPost, base+"/jump/"+index, "")
		if status != http.StatusOK {
			t.Fatalf("jump/%s status = %d", index, status)
		}
		if got := crumbs(decodeSession(t, data)); len(got) != 2 {
			t.Errorf("jump/%s breadcrumbs = %v, want unchanged", index, got)
		}
	}

	status, _ := do(t, http.MethodPost, base+"/jump/abc", "")
	if status != http.StatusBadRequest {
		t.Errorf("jump/abc status = %d, want 400", status)
	}
}

func TestBackAndReplaceDocument(t *testing.T) {
	ts := newTestServer(t, nil)
	created := createSession(t, ts, "")
	base := ts.URL + "/sessions/" + created.ID

	do(t, http.MethodPost, base+"/drill", `{"key": "Child"}`)
	_, data := do(t, http.MethodPost, base+"/back", "")
	if got := crumbs(decodeSession(t, data)); strings.Join(got, ",") != "Root" {
		t.Errorf("breadcrumbs after back = %v", got)
	}

	do(t, http.MethodPost, base+"/drill", `{"key": "Child"}`)
	status, data := do(t, http.MethodPut, base+"/document?format=yaml", "$ref: '#/definitions/Other'\ndefinitions:\n  Other: {}\n")
	if status != http.StatusOK {
		t.Fatalf("replace status = %d, body %s", status, data)
	}
	if got := crumbs(decodeSession(t, data)); strings.Join(got, ",") != "Other" {
		t.Errorf("breadcrumbs after replace = %v, want [Other]", got)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	created := createSession(t, ts, "")
	base := ts.URL + "/sessions/" + created.ID

	tests := []struct {
		name   string
		method string
		url    string
		body   string
		status int
		code   errors.Code
	}{
		{"empty document", http.MethodPost, ts.URL + "/sessions", "", 400, errors.ErrCodeInvalidInput},
		{"bad document", http.MethodPost, ts.URL + "/sessions", "{", 400, errors.ErrCodeInvalidFormat},
		{"bad format", http.MethodPost, ts.URL + "/sessions?format=xml", "{}", 400, errors.ErrCodeInvalidFormat},
		{"malformed id", http.MethodGet, ts.URL + "/sessions/nope", "", 400, errors.ErrCodeInvalidInput},
		{"unknown id", http.MethodGet, ts.URL + "/sessions/3f1c2a9e-8d7b-4c6a-9e1f-2b3c4d5e6f70", "", 404, errors.ErrCodeSessionNotFound},
		{"empty key", http.MethodPost, base + "/drill", `{"key": ""}`, 400, errors.ErrCodeInvalidKey},
		{"bad drill body", http.MethodPost, base + "/drill", `nope`, 400, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, tt.method, tt.url, tt.body)
			if status != tt.status {
				t.Errorf("status = %d, want %d (body %s)", status, tt.status, data)
			}
			var resp errorResponse
			if err := json.Unmarshal(data, &resp); err != nil {
				t.Fatalf("decode error body %s: %v", data, err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t, nil)
	created := createSession(t, ts, "")
	base := ts.URL + "/sessions/" + created.ID

	if status, _ := do(t, http.MethodDelete, base, ""); status != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", status)
	}
	if status, _ := do(t, http.MethodGet, base, ""); status != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}
	if status, _ := do(t, http.MethodDelete, base, ""); status != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", status)
	}
}

func TestPersistAndResume(t *testing.T) {
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := session.NewStore(backend, session.Options{})
	ts := newTestServer(t, store)

	first := createSession(t, ts, "?source=api.json")
	do(t, http.MethodPost, ts.URL+"/sessions/"+first.ID+"/drill", `{"key": "Child"}`)

	saved, err := store.Get(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("stored session: %v", err)
	}
	if strings.Join(saved.Trail, ",") != "Root,Child" || saved.Source != "api.json" {
		t.Errorf("stored session = %+v", saved)
	}

	resumed := createSession(t, ts, "?resume=true")
	if !resumed.Restored {
		t.Error("Restored = false, want true")
	}
	if got := crumbs(resumed); strings.Join(got, ",") != "Root,Child" {
		t.Errorf("resumed breadcrumbs = %v, want [Root Child]", got)
	}

	fresh := createSession(t, ts, "")
	if fresh.Restored || len(fresh.View.Breadcrumbs) != 1 {
		t.Errorf("session without resume = %+v, want fresh trail", fresh)
	}
}

type routeEvent struct {
	kind, method, route string
	status              int
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	events []routeEvent
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, routeEvent{kind: "request", method: method, route: route})
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, routeEvent{kind: "response", method: method, route: route, status: status})
}

func (h *recordingHTTPHooks) take() []routeEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	events := h.events
	h.events = nil
	return events
}

var _ observability.HTTPHooks = (*recordingHTTPHooks)(nil)

func TestHTTPHooksRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	handler := New(Options{Logger: log.New(io.Discard)}).Handler()
	serve := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec
	}

	rec := serve(http.MethodPost, "/sessions", scenarioJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	id := decodeSession(t, rec.Body.Bytes()).ID
	hooks.take()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		route  string
		status int
	}{
		{"drill", http.MethodPost, "/sessions/" + id + "/drill", `{"key": "Child"}`, "/sessions/{id}/drill", http.StatusOK},
		{"jump", http.MethodPost, "/sessions/" + id + "/jump/0", "", "/sessions/{id}/jump/{index}", http.StatusOK},
		{"view", http.MethodGet, "/sessions/" + id, "", "/sessions/{id}", http.StatusOK},
		{"healthz", http.MethodGet, "/healthz", "", "/healthz", http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", "", unmatchedRoute, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			events := hooks.take()
			if len(events) != 2 {
				t.Fatalf("hook events = %+v, want request and response", events)
			}
			for _, e := range events {
				if e.route != tt.route || e.method != tt.method {
					t.Errorf("%s event = %s %q, want %s %q", e.kind, e.method, e.route, tt.method, tt.route)
				}
			}
			if events[0].kind != "request" || events[1].kind != "response" || events[1].status != tt.status {
				t.Errorf("events = %+v, want request then response with status %d", events, tt.status)
			}
		})
	}
}
