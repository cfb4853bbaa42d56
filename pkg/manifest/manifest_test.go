package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/depkit/depkit/pkg/errors"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ancestorHasManifest reports whether any directory from dir up to the root
// contains a package.json. Tests that assert a miss skip when the
// surrounding filesystem would satisfy the walk.
func ancestorHasManifest(t *testing.T, dir string) bool {
	t.Helper()
	dir, err := filepath.Abs(dir)
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, Filename)); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

func TestLocate_Nearest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	outer := writeManifest(t, root, `{"name": "outer"}`)
	inner := writeManifest(t, filepath.Join(root, "a"), `{"name": "inner"}`)

	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"from deepest dir", nested, inner},
		{"from manifest dir itself", filepath.Join(root, "a"), inner},
		{"from root", root, outer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(tt.start)
			if !ok {
				t.Fatal("Locate() reported no manifest")
			}
			if got != tt.want {
				t.Errorf("Locate(%s) = %s, want %s", tt.start, got, tt.want)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("Locate() returned relative path %s", got)
			}
		})
	}
}

func TestLocate_Miss(t *testing.T) {
	dir := t.TempDir()
	if ancestorHasManifest(t, filepath.Dir(dir)) {
		t.Skipf("an ancestor of %s contains a %s", dir, Filename)
	}

	if got, ok := Locate(dir); ok {
		t.Errorf("Locate() = %s, want miss", got)
	}
}

func TestLocate_IgnoresDirectory(t *testing.T) {
	dir := t.TempDir()
	if ancestorHasManifest(t, filepath.Dir(dir)) {
		t.Skipf("an ancestor of %s contains a %s", dir, Filename)
	}

	// A directory named package.json must not satisfy the walk.
	if err := os.Mkdir(filepath.Join(dir, Filename), 0o755); err != nil {
		t.Fatal(err)
	}
	if got, ok := Locate(dir); ok {
		t.Errorf("Locate() = %s, want miss for directory entry", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{
  "name": "my-package",
  "version": "1.0.0",
  "dependencies": {"express": "^4.18.0"},
  "devDependencies": {"jest": "^29.0.0"}
}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if m.Name != "my-package" {
		t.Errorf("Name = %q, want %q", m.Name, "my-package")
	}
	if m.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", m.Version, "1.0.0")
	}
	if m.Path != path {
		t.Errorf("Path = %q, want %q", m.Path, path)
	}
	if m.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", m.Dir(), dir)
	}
	if _, ok := m.Dependencies["express"]; !ok {
		t.Error("dependencies missing express")
	}
	if _, ok := m.DevDependencies["jest"]; !ok {
		t.Error("devDependencies missing jest")
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"name": "broken",`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() succeeded on malformed JSON")
	}
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error code = %v, want INVALID_MANIFEST", errors.GetCode(err))
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), Filename))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestFind_NotFound(t *testing.T) {
	dir := t.TempDir()
	if ancestorHasManifest(t, filepath.Dir(dir)) {
		t.Skipf("an ancestor of %s contains a %s", dir, Filename)
	}

	_, err := Find(dir)
	if err == nil {
		t.Fatal("Find() succeeded with no manifest anywhere")
	}
	if !errors.Is(err, errors.ErrCodeManifestNotFound) {
		t.Errorf("error code = %v, want MANIFEST_NOT_FOUND", errors.GetCode(err))
	}
}
