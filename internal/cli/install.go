package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depkit/depkit/pkg/history"
	"github.com/depkit/depkit/pkg/manifest"
)

// installOpts holds the command-line flags for the install command.
type installOpts struct {
	dir         string // directory to start the manifest search from
	prod        bool   // save under dependencies instead of devDependencies
	interactive bool   // pick versions interactively
}

// installCommand creates the install command.
// Packages are installed with a single package-manager invocation in the
// directory of the nearest package.json, saved as devDependencies by default.
func (c *CLI) installCommand() *cobra.Command {
	opts := installOpts{dir: "."}

	cmd := &cobra.Command{
		Use:   "install <package>...",
		Short: "Install packages in the nearest package.json project",
		Long: `Install packages in the nearest package.json project.

The project root is found by walking up from --dir. All packages are passed
to a single package-manager invocation with inherited standard streams, so
interactive prompts and progress bars work as usual. Packages are saved as
devDependencies unless --prod is given.

With --interactive, a version picker is shown for each package before
installing.

Examples:
  depkit install eslint prettier
  depkit install --prod express
  depkit install --interactive typescript`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInstall(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "directory to start the manifest search from")
	cmd.Flags().BoolVar(&opts.prod, "prod", false, "save under dependencies instead of devDependencies")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick versions interactively")

	return cmd
}

func (c *CLI) runInstall(cmd *cobra.Command, args []string, opts *installOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	m, err := manifest.Find(opts.dir)
	if err != nil {
		return err
	}
	logger.Debugf("Project root: %s", m.Dir())

	pkgs := args
	if opts.interactive {
		pkgs, err = c.pickVersions(cmd, args)
		if err != nil {
			return err
		}
		if pkgs == nil {
			printInfo("Install cancelled")
			return nil
		}
	}

	logger.Infof("Installing %s", strings.Join(pkgs, " "))
	prog := newProgress(logger)

	inst := c.newInstaller(m.Dir())
	if opts.prod {
		err = inst.Install(ctx, pkgs...)
	} else {
		err = inst.InstallSaveDev(ctx, pkgs...)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Installed %d packages", len(pkgs)))

	c.recordInstall(logger, m.Dir(), pkgs, !opts.prod)

	printSuccess("Installed %s", strings.Join(pkgs, " "))
	printDetail("Project: %s", m.Dir())
	return nil
}

// pickVersions resolves an explicit version for each package through the
// interactive picker. A nil result means the user cancelled.
func (c *CLI) pickVersions(cmd *cobra.Command, args []string) ([]string, error) {
	ctx := cmd.Context()
	client, err := c.newRegistryClient()
	if err != nil {
		return nil, err
	}

	pkgs := make([]string, 0, len(args))
	for _, pkg := range args {
		spin := newSpinner(ctx, fmt.Sprintf("Fetching versions for %s...", pkg))
		spin.Start()
		versions, err := client.FetchVersions(ctx, pkg, false)
		spin.Stop()
		if err != nil {
			return nil, err
		}

		version, err := pickVersion(pkg, versions)
		if err != nil {
			return nil, err
		}
		if version == "" {
			return nil, nil
		}
		pkgs = append(pkgs, pkg+"@"+version)
	}
	return pkgs, nil
}

// recordInstall appends the install to the local history. History failures
// are logged, never fatal.
func (c *CLI) recordInstall(logger interface{ Warnf(string, ...any) }, dir string, pkgs []string, saveDev bool) {
	store, err := c.historyStore()
	if err != nil {
		logger.Warnf("History disabled: %v", err)
		return
	}
	if _, err := store.Append(history.Entry{Dir: dir, Packages: pkgs, SaveDev: saveDev}); err != nil {
		logger.Warnf("Recording install failed: %v", err)
	}
}
