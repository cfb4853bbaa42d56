package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// infoCommand creates the info command showing registry metadata for a package.
func (c *CLI) infoCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show registry metadata for a package",
		Long: `Show registry metadata for a package: latest version, license,
author, homepage, and direct dependencies.

Responses are cached; use --refresh to bypass the cache.

Examples:
  depkit info express
  depkit info --refresh typescript`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd, args[0], refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

func (c *CLI) runInfo(cmd *cobra.Command, pkg string, refresh bool) error {
	ctx := cmd.Context()

	client, err := c.newRegistryClient()
	if err != nil {
		return err
	}

	spin := newSpinner(ctx, fmt.Sprintf("Fetching %s...", pkg))
	spin.Start()
	info, err := client.FetchPackage(ctx, pkg, refresh)
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(info.Name) + " " + StyleDim.Render(info.Version))
	if info.Description != "" {
		printDetail("%s", info.Description)
	}
	fmt.Println()

	if info.License != "" {
		printKeyValue("License", info.License)
	}
	if info.Author != "" {
		printKeyValue("Author", info.Author)
	}
	if info.HomePage != "" {
		printKeyValue("Homepage", StyleLink.Render(info.HomePage))
	}
	if info.Repository != "" {
		printKeyValue("Repository", StyleLink.Render(info.Repository))
	}

	if len(info.Dependencies) > 0 {
		printKeyValue("Deps", fmt.Sprintf("%d", len(info.Dependencies)))
		printDetail("%s", strings.Join(info.Dependencies, ", "))
	} else {
		printKeyValue("Deps", "none")
	}

	printNextStep("Render the dependency tree", fmt.Sprintf("%s tree %s", appName, pkg))
	return nil
}
