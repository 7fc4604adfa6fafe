package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/protonav/pkg/cache"
)

// sessionsCommand creates the saved-trail management command.
func (c *CLI) sessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved navigation trails",
	}

	cmd.AddCommand(c.sessionsClearCommand())
	cmd.AddCommand(c.sessionsPathCommand())

	return cmd
}

// sessionsClearCommand creates the "sessions clear" subcommand.
func (c *CLI) sessionsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all trails saved by the file backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.config.Sessions.Backend != BackendFile {
				printWarning("Sessions use the %s backend; nothing stored on disk", c.config.Sessions.Backend)
				return nil
			}
			dir, err := sessionDir()
			if err != nil {
				return fmt.Errorf("get session dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("No saved sessions")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open session dir: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("No saved sessions")
				return nil
			}
			printSuccess("Cleared %d stored entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// sessionsPathCommand creates the "sessions path" subcommand.
func (c *CLI) sessionsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the session directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := sessionDir()
			if err != nil {
				return fmt.Errorf("get session dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
