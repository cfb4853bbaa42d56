package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/depkit/depkit/pkg/errors"
	"github.com/depkit/depkit/pkg/manifest"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	dir     string // directory to start the manifest search from
	dev     bool   // search devDependencies
	prod    bool   // search dependencies
	jsonOut bool   // print machine-readable JSON instead of styled output
}

// fields converts the flags into manifest query options.
// With neither --dev nor --prod, both fields are searched.
func (o *checkOpts) fields() manifest.CheckOptions {
	if !o.dev && !o.prod {
		return manifest.CheckOptions{Dependencies: true, DevDependencies: true}
	}
	return manifest.CheckOptions{Dependencies: o.prod, DevDependencies: o.dev}
}

// checkCommand creates the check command.
// It reports whether packages are declared in the nearest package.json and
// exits non-zero when any of them is missing.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{dir: "."}

	cmd := &cobra.Command{
		Use:   "check <package>...",
		Short: "Check whether packages are declared in the nearest package.json",
		Long: `Check whether packages are declared in the nearest package.json.

The manifest is found by walking up from --dir (default: current directory).
Without flags both dependencies and devDependencies are searched; --dev and
--prod restrict the search to one field.

Matching is exact and case-sensitive. The command exits non-zero when any
requested package is not declared, or when no package.json exists between
--dir and the filesystem root.

Examples:
  depkit check eslint
  depkit check --dev eslint prettier
  depkit check --dir ./packages/api --prod express`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "directory to start the manifest search from")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "search devDependencies only")
	cmd.Flags().BoolVar(&opts.prod, "prod", false, "search dependencies only")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print results as JSON")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, args []string, opts *checkOpts) error {
	logger := loggerFromContext(cmd.Context())

	m, err := manifest.Find(opts.dir)
	if err != nil {
		return err
	}
	logger.Debugf("Using manifest %s", m.Path)

	result := m.Check(args, opts.fields())

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printDetail("Manifest: %s", m.Path)
		for _, pkg := range args {
			if result[pkg] {
				printSuccess("%s is declared", pkg)
			} else {
				printWarning("%s is not declared", pkg)
			}
		}
	}

	missing := 0
	for _, pkg := range args {
		if !result[pkg] {
			missing++
		}
	}
	if missing > 0 {
		if !opts.jsonOut {
			printNextStep("Install missing packages", fmt.Sprintf("%s install <package>...", appName))
		}
		return errors.New(errors.ErrCodePackageNotFound, "%d of %d packages not declared", missing, len(args))
	}
	return nil
}
