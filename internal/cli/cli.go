// Package cli implements the depkit command-line interface.
//
// This package provides commands for querying a project's package.json,
// installing packages through npm, inspecting registry metadata, and
// rendering dependency trees. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Query whether packages are declared in the nearest package.json
//   - install: Install packages via the configured package manager
//   - info: Show registry metadata for a package
//   - tree: Resolve and render a dependency tree
//   - history: Show or clear recorded installs
//   - cache: Manage the registry response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/depkit/depkit/pkg/buildinfo"
	"github.com/depkit/depkit/pkg/config"
	"github.com/depkit/depkit/pkg/history"
	"github.com/depkit/depkit/pkg/npm"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "depkit"

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
	Config *config.Config
}

// New creates a new CLI instance with a default logger. A broken user config
// file is reported but never fatal; defaults apply instead.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}

	cfg, err := config.Load("")
	if err != nil {
		c.Logger.Warnf("Ignoring config: %v", err)
		cfg = config.Default()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "depkit manages package.json dependencies from the command line",
		Long:         `depkit is a CLI tool for working with Node.js projects: it finds the nearest package.json, answers dependency membership queries, installs packages through npm, and renders dependency trees.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.installCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newRegistryClient creates an npm registry client from the user config.
func (c *CLI) newRegistryClient() (*npm.Client, error) {
	return npm.NewClient(c.Config.Registry, c.Config.TTL())
}

// newInstaller creates an installer bound to dir using the configured
// package manager binary.
func (c *CLI) newInstaller(dir string) *npm.Installer {
	inst := npm.NewInstaller(dir)
	inst.Bin = c.Config.Manager
	return inst
}

// historyStore opens the install history in the default state directory.
func (c *CLI) historyStore() (*history.Store, error) {
	dir, err := history.DefaultDir()
	if err != nil {
		return nil, err
	}
	return history.NewStore(dir)
}
