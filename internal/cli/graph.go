package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/render/nodelink"
)

// Graph output formats.
const (
	graphFormatDOT = "dot"
	graphFormatSVG = "svg"
	graphFormatPNG = "png"
)

// graphOpts holds options for the graph command.
type graphOpts struct {
	output   string
	format   string
	root     string
	detailed bool
}

// graphCommand creates the graph export command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Export the definition reference graph",
		Long: `Export the graph of definitions and the properties that reference them.

The format follows the output extension (.dot, .svg, .png) unless --format
is given. Without -o, DOT text is written to stdout.`,
		Example: `  protonav graph api.json > api.dot
  protonav graph api.json -o api.svg --root Order
  protonav graph api.yaml -o api.png --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png (default from extension)")
	cmd.Flags().StringVar(&opts.root, "root", "", "only draw definitions reachable from this key")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list scalar properties inside nodes")
	_ = cmd.RegisterFlagCompletionFunc("root", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeDefinitionKeys(cmd, args, toComplete)
	})
	return cmd
}

func (c *CLI) runGraph(ctx context.Context, path string, opts graphOpts) error {
	format, err := graphFormat(opts.output, opts.format)
	if err != nil {
		return err
	}
	doc, _, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}
	if opts.root != "" {
		if _, ok := doc.Definition(opts.root); !ok {
			c.Logger.Warn("root definition not found, drawing it as missing", "root", opts.root)
		}
	}

	prog := newProgress(c.Logger)
	dot := nodelink.ToDOT(doc, nodelink.Options{Root: opts.root, Detailed: opts.detailed})

	var data []byte
	switch format {
	case graphFormatSVG:
		data, err = nodelink.RenderSVG(dot)
	case graphFormatPNG:
		data, err = nodelink.RenderPNG(dot)
	default:
		data = []byte(dot)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	prog.done(fmt.Sprintf("Rendered %s graph", format))
	printFile(opts.output)
	return nil
}

// graphFormat picks the output format from an explicit flag or the output
// file extension, defaulting to DOT.
func graphFormat(output, explicit string) (string, error) {
	f := strings.ToLower(explicit)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch f {
	case "", "gv", graphFormatDOT:
		return graphFormatDOT, nil
	case graphFormatSVG, graphFormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (use dot, svg or png)", f)
}
