// Package deps resolves transitive dependency graphs.
//
// A [Fetcher] supplies per-package metadata (usually a registry client);
// [Resolve] walks the dependency closure breadth-first, bounded by
// MaxDepth and MaxNodes, and produces a [Graph]. Packages whose fetch
// fails are kept as leaves so one flaky registry lookup doesn't discard
// the rest of the graph.
package deps
