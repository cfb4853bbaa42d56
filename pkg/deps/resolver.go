package deps

import (
	"context"
)

// Resolve fetches the transitive dependency closure of root breadth-first
// and returns it as a graph. Traversal stops at opts.MaxDepth levels and
// opts.MaxNodes fetched packages, whichever comes first.
//
// A package whose fetch fails is logged via opts.Logger and kept in the
// graph as a leaf; the error does not abort resolution. Only a failure to
// fetch the root itself is returned as an error.
func Resolve(ctx context.Context, root string, f Fetcher, opts Options) (*Graph, error) {
	opts = opts.WithDefaults()
	g := NewGraph()

	rootPkg, err := f.FetchPackage(ctx, root, opts.Refresh)
	if err != nil {
		return nil, err
	}
	g.AddNode(root, rootPkg.Metadata())

	type item struct {
		name  string
		deps  []string
		depth int
	}
	queue := []item{{name: root, deps: rootPkg.Dependencies, depth: 0}}
	visited := map[string]bool{root: true}
	fetched := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= opts.MaxDepth {
			continue
		}

		for _, dep := range cur.deps {
			g.AddEdge(cur.name, dep)
			if visited[dep] {
				continue
			}
			visited[dep] = true

			if fetched >= opts.MaxNodes {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			pkg, err := f.FetchPackage(ctx, dep, opts.Refresh)
			if err != nil {
				opts.Logger("resolve failed: %s: %v", dep, err)
				continue
			}
			fetched++
			g.AddNode(dep, pkg.Metadata())
			queue = append(queue, item{name: dep, deps: pkg.Dependencies, depth: cur.depth + 1})
		}
	}

	return g, nil
}
