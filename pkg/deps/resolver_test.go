package deps

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeFetcher serves a fixed dependency table.
type fakeFetcher struct {
	table map[string][]string
	calls int
}

func (f *fakeFetcher) FetchPackage(ctx context.Context, name string, refresh bool) (*Package, error) {
	f.calls++
	deps, ok := f.table[name]
	if !ok {
		return nil, fmt.Errorf("unknown package %s", name)
	}
	return &Package{Name: name, Version: "1.0.0", Dependencies: deps}, nil
}

func TestResolve_Transitive(t *testing.T) {
	f := &fakeFetcher{table: map[string][]string{
		"root": {"a", "b"},
		"a":    {"c"},
		"b":    {"c"},
		"c":    {},
	}}

	g, err := Resolve(t.Context(), "root", f, Options{})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if got := g.NodeCount(); got != 4 {
		t.Errorf("NodeCount = %d, want 4", got)
	}
	// root->a, root->b, a->c, b->c
	if got := g.EdgeCount(); got != 4 {
		t.Errorf("EdgeCount = %d, want 4", got)
	}

	// Shared dependency fetched once.
	if f.calls != 4 {
		t.Errorf("fetch calls = %d, want 4", f.calls)
	}
}

func TestResolve_MaxDepth(t *testing.T) {
	f := &fakeFetcher{table: map[string][]string{
		"root": {"l1"},
		"l1":   {"l2"},
		"l2":   {"l3"},
		"l3":   {},
	}}

	g, err := Resolve(t.Context(), "root", f, Options{MaxDepth: 1})
	if err != nil {
		t.Fatal(err)
	}

	// Depth 1 expands root's direct deps only; l2 is never reached.
	if _, ok := g.Node("l1"); !ok {
		t.Error("direct dependency missing from graph")
	}
	if _, ok := g.Node("l2"); ok {
		t.Error("dependency beyond max depth should not appear")
	}
}

func TestResolve_MaxNodes(t *testing.T) {
	table := map[string][]string{"root": nil}
	for i := range 20 {
		dep := fmt.Sprintf("dep%02d", i)
		table["root"] = append(table["root"], dep)
		table[dep] = nil
	}
	f := &fakeFetcher{table: table}

	_, err := Resolve(t.Context(), "root", f, Options{MaxNodes: 5})
	if err != nil {
		t.Fatal(err)
	}
	if f.calls > 5 {
		t.Errorf("fetch calls = %d, want at most 5", f.calls)
	}
}

func TestResolve_FailedFetchKeepsLeaf(t *testing.T) {
	f := &fakeFetcher{table: map[string][]string{
		"root": {"good", "missing"},
		"good": {},
	}}

	var warnings []string
	logf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	g, err := Resolve(t.Context(), "root", f, Options{Logger: logf})
	if err != nil {
		t.Fatalf("Resolve() should tolerate per-package failures: %v", err)
	}

	if _, ok := g.Node("missing"); !ok {
		t.Error("failed package should remain in the graph as a leaf")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "missing") {
		t.Errorf("expected one warning naming the failed package, got %v", warnings)
	}
}

func TestResolve_RootFetchFails(t *testing.T) {
	f := &fakeFetcher{table: map[string][]string{}}
	if _, err := Resolve(t.Context(), "nope", f, Options{}); err == nil {
		t.Fatal("Resolve() should fail when the root cannot be fetched")
	}
}

func TestGraph_DedupesEdges(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "a")

	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount = %d, want 1", got)
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("NodeCount = %d, want 2", got)
	}
}

func TestGraph_InsertionOrder(t *testing.T) {
	g := NewGraph()
	for _, n := range []string{"c", "a", "b"} {
		g.AddNode(n, nil)
	}

	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.Name)
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Nodes() order = %v, want %v", got, want)
		}
	}
}
