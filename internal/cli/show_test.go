package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/nav"
)

const showDoc = `$ref: "#/definitions/Order"
definitions:
  Order:
    description: A placed order.
    required: [customer]
    properties:
      id: {type: string}
      customer: {$ref: "#/definitions/Customer"}
  Customer:
    properties:
      name: {type: string}
`

func testCLI(t *testing.T) (*CLI, context.Context) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	return c, withLogger(context.Background(), c.Logger)
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.yaml")
	if err := os.WriteFile(path, []byte(showDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunShowText(t *testing.T) {
	c, ctx := testCLI(t)
	var buf bytes.Buffer
	if err := c.runShow(ctx, &buf, writeDoc(t), nil, false); err != nil {
		t.Fatalf("runShow() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"0:Order", "A placed order.", "customer", "Customer", "id", "string"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "customer") > strings.Index(out, "string") {
		t.Errorf("linked row should come first:\n%s", out)
	}
}

func TestRunShowJSON(t *testing.T) {
	c, ctx := testCLI(t)
	var buf bytes.Buffer
	if err := c.runShow(ctx, &buf, writeDoc(t), []string{"Customer"}, true); err != nil {
		t.Fatalf("runShow() error: %v", err)
	}

	var v nav.View
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", buf.String(), err)
	}
	if v.CurrentKey != "Customer" || v.Depth() != 2 {
		t.Errorf("view = %+v", v)
	}
	if len(v.Rows) != 1 || v.Rows[0].Name != "name" || v.Rows[0].Type != "string" {
		t.Errorf("rows = %+v", v.Rows)
	}
}

func TestRunShowDangling(t *testing.T) {
	c, ctx := testCLI(t)
	var buf bytes.Buffer
	if err := c.runShow(ctx, &buf, writeDoc(t), []string{"Ghost"}, false); err != nil {
		t.Fatalf("runShow() error: %v", err)
	}
	if !strings.Contains(buf.String(), `definition "Ghost" not found`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestRunShowErrors(t *testing.T) {
	c, ctx := testCLI(t)

	err := c.runShow(ctx, io.Discard, filepath.Join(t.TempDir(), "missing.json"), nil, false)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	err = c.runShow(ctx, io.Discard, writeDoc(t), []string{" "}, false)
	if !errors.Is(err, errors.ErrCodeInvalidKey) {
		t.Errorf("blank key error = %v", err)
	}
}

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		output, explicit, want string
		wantErr                bool
	}{
		{"", "", graphFormatDOT, false},
		{"out.dot", "", graphFormatDOT, false},
		{"out.gv", "", graphFormatDOT, false},
		{"out.SVG", "", graphFormatSVG, false},
		{"out.png", "", graphFormatPNG, false},
		{"out.png", "svg", graphFormatSVG, false},
		{"out.pdf", "", "", true},
		{"", "jpeg", "", true},
	}

	for _, tt := range tests {
		got, err := graphFormat(tt.output, tt.explicit)
		if (err != nil) != tt.wantErr {
			t.Errorf("graphFormat(%q, %q) error = %v, wantErr %v", tt.output, tt.explicit, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("graphFormat(%q, %q) = %q, want %q", tt.output, tt.explicit, got, tt.want)
		}
	}
}

func TestRunGraphDOT(t *testing.T) {
	c, ctx := testCLI(t)
	out := filepath.Join(t.TempDir(), "orders.dot")
	if err := c.runGraph(ctx, writeDoc(t), graphOpts{output: out}); err != nil {
		t.Fatalf("runGraph() error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("digraph")) || !bytes.Contains(data, []byte("Customer")) {
		t.Errorf("dot output = %s", data)
	}
}

func TestCompleteDefinitionKeys(t *testing.T) {
	path := writeDoc(t)

	keys, _ := completeDefinitionKeys(nil, []string{path}, "Cu")
	if len(keys) != 1 || keys[0] != "Customer" {
		t.Errorf("completions for Cu = %v, want [Customer]", keys)
	}

	keys, _ = completeDefinitionKeys(nil, []string{path}, "")
	if strings.Join(keys, ",") != "Customer,Order" {
		t.Errorf("completions = %v, want [Customer Order]", keys)
	}

	if keys, _ := completeDefinitionKeys(nil, []string{"missing.json"}, ""); keys != nil {
		t.Errorf("completions for missing file = %v, want none", keys)
	}
}
