// Package cli implements the protonav command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/protonav/pkg/buildinfo"
	"github.com/matzehuels/protonav/pkg/cache"
	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "protonav"

	// sessionsDir is the subdirectory of the cache dir holding saved trails.
	sessionsDir = "sessions"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Protonav browses schema definitions and their references",
		Long:         `Protonav is a CLI tool for exploring schema documents: drill into referenced definitions and jump back along a breadcrumb trail, in the terminal or over HTTP.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= log.DebugLevel {
				registerHooks(c.Logger)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/protonav/config.toml)")

	// Register all subcommands
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sessionsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file. A missing default file is not an error;
// a missing file named with --config is.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, errors.ErrCodeFileNotFound) {
			return nil
		}
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Session Store Factory
// =============================================================================

// newSessionStore opens the session store selected by the config.
// Backend "none" returns a store that never remembers anything.
func (c *CLI) newSessionStore(ctx context.Context) (*session.CacheStore, error) {
	backend, err := c.newSessionBackend(ctx)
	if err != nil {
		return nil, err
	}
	return session.NewStore(backend, session.Options{TTL: c.config.Sessions.TTL.Duration}), nil
}

func (c *CLI) newSessionBackend(ctx context.Context) (cache.Cache, error) {
	switch c.config.Sessions.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		c.Logger.Debug("connecting to redis", "addr", c.config.Sessions.RedisAddr, "db", c.config.Sessions.RedisDB)
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.config.Sessions.RedisAddr,
			Password: os.Getenv("PROTONAV_REDIS_PASSWORD"),
			DB:       c.config.Sessions.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "open redis session backend")
		}
		return rc, nil
	default:
		dir, err := sessionDir()
		if err != nil {
			c.Logger.Warn("no cache directory, sessions will not be saved", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "open session directory")
		}
		return fc, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/protonav/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// sessionDir returns the directory of the file session backend.
func sessionDir() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionsDir), nil
}

// configPath returns the config file path using XDG standard
// (~/.config/protonav/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
