package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/nav"
	"github.com/matzehuels/protonav/pkg/schema"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <file> [key...]",
		Short: "Print the view reached by drilling through keys",
		Long: `Print one navigation view without starting the browser.

The trail starts at the document's root definition and each key argument
is drilled into in order. Keys do not have to exist; a missing definition
is shown as not found.`,
		Example: `  protonav show api.json
  protonav show api.json Customer Address
  protonav show --json api.yaml Order`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeDefinitionKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), os.Stdout, args[0], args[1:], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	return cmd
}

func (c *CLI) runShow(ctx context.Context, w io.Writer, path string, keys []string, asJSON bool) error {
	doc, _, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}
	v, err := walk(doc, keys)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err = fmt.Fprint(w, renderView(v, -1))
	return err
}

// walk initializes a navigator on doc and drills through keys.
func walk(doc *schema.Document, keys []string) (nav.View, error) {
	n := nav.NewNavigator(nav.WithDocument(doc))
	v := n.View()
	for _, key := range keys {
		if err := errors.ValidateDefinitionKey(key); err != nil {
			return nav.View{}, err
		}
		v = n.Drill(key)
	}
	return v, nil
}
