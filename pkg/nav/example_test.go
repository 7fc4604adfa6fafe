package nav_test

import (
	"fmt"

	"github.com/matzehuels/protonav/pkg/nav"
	"github.com/matzehuels/protonav/pkg/schema"
)

func ExampleNavigator() {
	doc := &schema.Document{
		Ref: "#/definitions/Root",
		Definitions: map[string]*schema.Definition{
			"Root": {Properties: map[string]*schema.Property{
				"name":  {Type: "string"},
				"child": {Ref: "#/definitions/Child"},
			}},
			"Child": {Properties: map[string]*schema.Property{}},
		},
	}

	n := nav.NewNavigator()
	v := n.SetDocument(doc)
	for _, row := range v.Rows {
		fmt.Printf("%s %s %q\n", row.Name, row.Type, row.Link)
	}

	n.Drill("Child")
	fmt.Println(n.Stack())

	v = n.JumpTo(0)
	fmt.Println(n.Stack(), v.CurrentKey)
	// Output:
	// child object "Child"
	// name string ""
	// [Root Child]
	// [Root] Root
}

func ExampleStack_JumpTo() {
	s := nav.Stack{"Root", "A", "B"}
	fmt.Println(s.JumpTo(1))
	fmt.Println(s.JumpTo(5)) // out of range: unchanged
	// Output:
	// [Root A]
	// [Root A B]
}
