package deps

import (
	"context"
	"time"
)

const (
	DefaultMaxDepth = 10             // Default maximum dependency depth
	DefaultMaxNodes = 500            // Default maximum packages to fetch
	DefaultCacheTTL = 24 * time.Hour // Default HTTP cache duration
)

// Options configures dependency resolution behavior.
type Options struct {
	MaxDepth int                  // Maximum depth to traverse (default: 10)
	MaxNodes int                  // Maximum packages to fetch (default: 500)
	Refresh  bool                 // Bypass cache for fresh data
	Logger   func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Package holds metadata fetched from a package registry.
type Package struct {
	Name         string   // Package name
	Version      string   // Latest or specified version
	Dependencies []string // Direct dependency names
	Description  string   // Package summary/description
	License      string   // License identifier
	Author       string   // Primary author or maintainer
	Repository   string   // Source repository URL
	HomePage     string   // Project homepage URL
}

// Metadata converts Package fields to a map for node metadata.
func (p *Package) Metadata() map[string]any {
	m := map[string]any{"version": p.Version}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.License != "" {
		m["license"] = p.License
	}
	if p.Author != "" {
		m["author"] = p.Author
	}
	return m
}

// Fetcher supplies package metadata for resolution, typically backed by a
// registry client.
type Fetcher interface {
	// FetchPackage returns metadata for the named package.
	// When refresh is true, any cache layer is bypassed.
	FetchPackage(ctx context.Context, name string, refresh bool) (*Package, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, name string, refresh bool) (*Package, error)

// FetchPackage calls f.
func (f FetcherFunc) FetchPackage(ctx context.Context, name string, refresh bool) (*Package, error) {
	return f(ctx, name, refresh)
}
