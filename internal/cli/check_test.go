package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/depkit/depkit/pkg/errors"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunCheck_AllDeclared(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "app",
		"dependencies": {"express": "^4.0.0"},
		"devDependencies": {"eslint": "^9.0.0"}
	}`)

	c := testCLI(t)
	opts := &checkOpts{dir: dir}
	if err := c.runCheck(testCmd(t), []string{"express", "eslint"}, opts); err != nil {
		t.Errorf("runCheck() failed for declared packages: %v", err)
	}
}

func TestRunCheck_MissingPackageFails(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"dependencies": {"express": "^4.0.0"}}`)

	c := testCLI(t)
	opts := &checkOpts{dir: dir}
	err := c.runCheck(testCmd(t), []string{"express", "left-pad"}, opts)
	if err == nil {
		t.Fatal("runCheck() succeeded despite missing package")
	}
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("error code = %v, want PACKAGE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestRunCheck_FieldSelection(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"devDependencies": {"eslint": "^9.0.0"}}`)

	c := testCLI(t)

	// dev-only dependency not visible with --prod
	err := c.runCheck(testCmd(t), []string{"eslint"}, &checkOpts{dir: dir, prod: true})
	if err == nil {
		t.Error("runCheck(--prod) should not find a devDependency")
	}

	if err := c.runCheck(testCmd(t), []string{"eslint"}, &checkOpts{dir: dir, dev: true}); err != nil {
		t.Errorf("runCheck(--dev) failed: %v", err)
	}
}

func TestCheckOpts_Fields(t *testing.T) {
	tests := []struct {
		name               string
		dev, prod          bool
		wantDeps, wantDevs bool
	}{
		{"default searches both", false, false, true, true},
		{"dev only", true, false, false, true},
		{"prod only", false, true, true, false},
		{"both flags", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := checkOpts{dev: tt.dev, prod: tt.prod}
			got := o.fields()
			if got.Dependencies != tt.wantDeps || got.DevDependencies != tt.wantDevs {
				t.Errorf("fields() = %+v, want deps=%v devDeps=%v", got, tt.wantDeps, tt.wantDevs)
			}
		})
	}
}
