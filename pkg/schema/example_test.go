package schema_test

import (
	"fmt"

	"github.com/matzehuels/protonav/pkg/schema"
)

func ExampleResolve() {
	fmt.Printf("%q\n", schema.Resolve("#/definitions/User"))
	fmt.Printf("%q\n", schema.Resolve("other.json#/User"))
	fmt.Printf("%q\n", schema.Resolve(""))
	// Output:
	// "User"
	// "other.json#/User"
	// ""
}

func ExampleOrderedProperties() {
	def := &schema.Definition{Properties: map[string]*schema.Property{
		"b": {Type: "string"},
		"a": {Ref: "#/definitions/Foo"},
		"c": {Ref: "#/definitions/Bar"},
	}}
	fmt.Println(schema.OrderedProperties(def))
	// Output: [a c b]
}

func ExampleParse() {
	doc, err := schema.Parse([]byte(`
$ref: "#/definitions/Pet"
definitions:
  Pet:
    properties:
      owner: {$ref: "#/definitions/Person"}
      name: {type: string}
  Person: {}
`), schema.FormatYAML)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(doc.RootKey(), doc.Keys())
	// Output: Pet [Person Pet]
}
