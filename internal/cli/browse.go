package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/nav"
	"github.com/matzehuels/protonav/pkg/schema"
	"github.com/matzehuels/protonav/pkg/session"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var resume bool

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse a schema document interactively",
		Long: `Browse a schema document in the terminal.

The view starts at the definition named by the document's root $ref.
Rows with a link drill into the referenced definition; the breadcrumb
trail above the table can be jumped back to by index.

With --resume, the trail saved when you last quit on the same document
is restored.`,
		Example: `  protonav browse api.json
  protonav browse --resume api.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], resume)
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "restore the last saved trail for this document")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, path string, resume bool) error {
	doc, data, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}
	fingerprint := schema.Fingerprint(data)

	store, err := c.newSessionStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	n := nav.NewNavigator(nav.WithDocument(doc))
	sess := c.resumeSession(ctx, store, n, path, fingerprint, resume)

	final, err := tea.NewProgram(NewBrowserModel(n, path), tea.WithContext(ctx)).Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "run browser")
	}
	if m, ok := final.(BrowserModel); ok {
		sess.Trail = m.Nav.Stack()
	}

	if err := store.Save(ctx, sess); err != nil {
		c.Logger.Warn("could not save trail", "err", err)
		return nil
	}
	c.Logger.Debug("saved trail", "session", sess.ID, "depth", sess.Depth())
	return nil
}

// resumeSession returns the session to save on quit. With resume set it
// restores the latest trail for the document and keeps that session's ID.
func (c *CLI) resumeSession(ctx context.Context, store session.Store, n *nav.Navigator, source, fingerprint string, resume bool) *session.Session {
	if resume {
		prev, err := store.Latest(ctx, fingerprint)
		switch {
		case err == nil:
			if _, ok := n.Restore(prev.Trail); ok {
				c.Logger.Info("Resumed trail", "depth", len(prev.Trail))
				prev.Source = source
				return prev
			}
			c.Logger.Warn("saved trail does not match document root, starting fresh")
		case errors.Is(err, errors.ErrCodeSessionNotFound), errors.Is(err, errors.ErrCodeSessionExpired):
			c.Logger.Info("No saved trail for this document")
		default:
			c.Logger.Warn("could not read saved trail", "err", err)
		}
	}
	return session.New(source, fingerprint, n.Stack())
}
