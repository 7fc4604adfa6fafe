package cli

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the navigation HTTP API",
		Long: `Run an HTTP API exposing navigation sessions.

POST a schema document to /sessions to open a session, then drive it with
/sessions/{id}/drill, /jump/{index} and /back. Trails are saved to the
configured session backend after every step.`,
		Example: `  protonav serve
  protonav serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Serve.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+defaultServeAddr+")")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	store, err := c.newSessionStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(server.Options{Store: store, Logger: c.Logger}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "listen on %s", addr)
	}
	c.Logger.Info("Serving navigation API", "addr", ln.Addr().String(), "sessions", c.config.Sessions.Backend)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}
