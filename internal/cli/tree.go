package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/depkit/depkit/pkg/deps"
	"github.com/depkit/depkit/pkg/errors"
	"github.com/depkit/depkit/pkg/manifest"
	"github.com/depkit/depkit/pkg/npm"
	"github.com/depkit/depkit/pkg/render"
)

// Output formats for the tree command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	dev      bool   // include devDependencies of a local project root
	maxDepth int    // maximum dependency depth
	maxNodes int    // maximum packages to fetch
	refresh  bool   // bypass cache
	detailed bool   // include version/license metadata in node labels
	format   string // output format (dot or svg)
	output   string // output file path (stdout if empty)
}

// treeCommand creates the tree command.
// The argument is either a registry package name or a directory containing a
// package.json; directories are resolved from their manifest, with transitive
// dependencies fetched from the registry.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{maxDepth: deps.DefaultMaxDepth, maxNodes: deps.DefaultMaxNodes, format: formatDOT}

	cmd := &cobra.Command{
		Use:   "tree <package-or-dir>",
		Short: "Resolve and render a dependency tree",
		Long: `Resolve the transitive dependency tree of a package or local project
and render it as Graphviz DOT or SVG.

The argument is auto-detected: an existing directory (or a path containing a
package.json) is treated as a project root and its manifest provides the
direct dependencies; anything else is fetched from the registry.

Examples:
  depkit tree express
  depkit tree . --dev --format svg -o deps.svg
  depkit tree lodash --max-depth 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dev, "dev", false, "include devDependencies of a local project root")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "maximum dependency depth")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "maximum packages to fetch")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include version and license in node labels")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format (dot|svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, arg string, opts *treeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.format != formatDOT && opts.format != formatSVG {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (available: dot, svg)", opts.format)
	}

	client, err := c.newRegistryClient()
	if err != nil {
		return err
	}

	root, fetcher, err := c.treeFetcher(arg, client, opts)
	if err != nil {
		return err
	}

	logger.Infof("Resolving %s", root)
	prog := newProgress(logger)
	g, err := deps.Resolve(ctx, root, fetcher, deps.Options{
		MaxDepth: opts.maxDepth,
		MaxNodes: opts.maxNodes,
		Refresh:  opts.refresh,
		Logger:   func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages with %d dependencies", g.NodeCount(), g.EdgeCount()))

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})

	var out []byte
	if opts.format == formatSVG {
		out, err = render.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
	} else {
		out = []byte(dot)
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return err
	}
	printSuccess("Rendered dependency tree")
	printFile(opts.output)
	printStats(g.NodeCount(), g.EdgeCount(), !opts.refresh)
	return nil
}

// treeFetcher decides whether arg names a local project or a registry
// package, and returns the root name plus the fetcher to resolve with.
func (c *CLI) treeFetcher(arg string, client *npm.Client, opts *treeOpts) (string, deps.Fetcher, error) {
	if info, err := os.Stat(arg); err != nil || !info.IsDir() {
		return arg, client, nil
	}

	m, err := manifest.Find(arg)
	if err != nil {
		return "", nil, err
	}
	name := m.Name
	if name == "" {
		name = "project"
	}
	return name, &manifestFetcher{root: m, rootName: name, client: client, dev: opts.dev}, nil
}

// manifestFetcher serves the project root from the local manifest and
// everything else from the registry.
type manifestFetcher struct {
	root     *manifest.Manifest
	rootName string
	client   *npm.Client
	dev      bool
}

func (f *manifestFetcher) FetchPackage(ctx context.Context, name string, refresh bool) (*deps.Package, error) {
	if name != f.rootName {
		return f.client.FetchPackage(ctx, name, refresh)
	}
	fields := manifest.CheckOptions{Dependencies: true, DevDependencies: f.dev}
	return &deps.Package{
		Name:         f.rootName,
		Version:      f.root.Version,
		Dependencies: f.root.DirectDeps(fields),
	}, nil
}

var _ deps.Fetcher = (*manifestFetcher)(nil)
