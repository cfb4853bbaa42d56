package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// historyCommand creates the history command and its clear subcommand.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded installs",
		Long: `Show installs recorded by the install command, newest first.

Examples:
  depkit history
  depkit history --limit 5
  depkit history clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistory(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum entries to show (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded installs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.historyStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			printSuccess("History cleared")
			return nil
		},
	})

	return cmd
}

func (c *CLI) runHistory(limit int) error {
	store, err := c.historyStore()
	if err != nil {
		return err
	}

	entries, err := store.List(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printInfo("No installs recorded")
		return nil
	}

	for _, e := range entries {
		kind := "dev"
		if !e.SaveDev {
			kind = "prod"
		}
		printInfo("%s  %s", formatRelativeTime(e.Time), strings.Join(e.Packages, " "))
		printDetail("%s · %s", kind, e.Dir)
	}
	return nil
}
