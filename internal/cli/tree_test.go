package cli

import (
	"context"
	"testing"
)

func TestTreeFetcher_PackageName(t *testing.T) {
	c := testCLI(t)
	client, err := c.newRegistryClient()
	if err != nil {
		t.Fatal(err)
	}

	root, fetcher, err := c.treeFetcher("express", client, &treeOpts{})
	if err != nil {
		t.Fatalf("treeFetcher() failed: %v", err)
	}
	if root != "express" {
		t.Errorf("root = %q, want %q", root, "express")
	}
	if fetcher != client {
		t.Error("package name should resolve straight from the registry client")
	}
}

func TestTreeFetcher_LocalProject(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "my-app",
		"version": "1.2.3",
		"dependencies": {"express": "^4.0.0"},
		"devDependencies": {"eslint": "^9.0.0"}
	}`)

	c := testCLI(t)
	root, fetcher, err := c.treeFetcher(dir, nil, &treeOpts{})
	if err != nil {
		t.Fatalf("treeFetcher() failed: %v", err)
	}
	if root != "my-app" {
		t.Errorf("root = %q, want manifest name", root)
	}

	pkg, err := fetcher.FetchPackage(context.Background(), "my-app", false)
	if err != nil {
		t.Fatalf("FetchPackage(root) failed: %v", err)
	}
	if pkg.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", pkg.Version, "1.2.3")
	}
	if len(pkg.Dependencies) != 1 || pkg.Dependencies[0] != "express" {
		t.Errorf("Dependencies = %v, want [express] without --dev", pkg.Dependencies)
	}
}

func TestTreeFetcher_LocalProjectDev(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "my-app",
		"dependencies": {"express": "^4.0.0"},
		"devDependencies": {"eslint": "^9.0.0"}
	}`)

	c := testCLI(t)
	_, fetcher, err := c.treeFetcher(dir, nil, &treeOpts{dev: true})
	if err != nil {
		t.Fatal(err)
	}

	pkg, err := fetcher.FetchPackage(context.Background(), "my-app", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkg.Dependencies) != 2 {
		t.Errorf("Dependencies = %v, want both fields with --dev", pkg.Dependencies)
	}
}

func TestTreeFetcher_UnnamedProject(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"dependencies": {"express": "^4.0.0"}}`)

	c := testCLI(t)
	root, _, err := c.treeFetcher(dir, nil, &treeOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if root != "project" {
		t.Errorf("root = %q, want fallback name %q", root, "project")
	}
}
