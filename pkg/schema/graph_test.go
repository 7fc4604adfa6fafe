package schema

import (
	"path/filepath"
	"reflect"
	"slices"
	"testing"
)

func loadTestdata(t *testing.T) *Document {
	t.Helper()
	doc, _, err := LoadFile(filepath.Join("testdata", "protocols.json"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	return doc
}

func TestReferences(t *testing.T) {
	doc := loadTestdata(t)

	want := []Edge{
		{From: "Customer", Property: "address", To: "Address"},
		{From: "Order", Property: "customer", To: "Customer"},
		{From: "Order", Property: "lines", To: "OrderLine", Array: true},
		{From: "OrderLine", Property: "product", To: "Product", Missing: true},
	}
	if got := References(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("References() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestReachable(t *testing.T) {
	doc := loadTestdata(t)

	got := Reachable(doc, "Order")
	want := []string{"Order", "Customer", "OrderLine", "Address", "Product"}
	if !slices.Equal(got, want) {
		t.Errorf("Reachable(Order) = %v, want %v", got, want)
	}

	if got := Reachable(doc, "Address"); !slices.Equal(got, []string{"Address"}) {
		t.Errorf("Reachable(Address) = %v, want [Address]", got)
	}
	if got := Reachable(doc, ""); got != nil {
		t.Errorf("Reachable(\"\") = %v, want nil", got)
	}
}

func TestReachableHandlesCycles(t *testing.T) {
	doc := &Document{Definitions: map[string]*Definition{
		"Node": {Properties: map[string]*Property{
			"next":     {Ref: "#/definitions/Node"},
			"children": {Items: &Items{Ref: "#/definitions/Node"}},
		}},
	}}
	if got := Reachable(doc, "Node"); !slices.Equal(got, []string{"Node"}) {
		t.Errorf("Reachable(Node) = %v, want [Node]", got)
	}
}
