package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/depkit/depkit/pkg/errors"
)

// Filename is the manifest file name searched for by Locate.
const Filename = "package.json"

// Manifest holds the fields of a package.json that depkit reads.
// Only dependency names matter for queries; version specifiers are carried
// for display but never parsed.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`

	// Path is the absolute location the manifest was loaded from.
	// Not part of the JSON document.
	Path string `json:"-"`
}

// Locate walks parent directories starting at startDir until it finds a
// file named package.json, and returns its absolute path.
//
// The filesystem root itself is tested before the walk terminates. Absence
// is not an error: ok is false when no manifest exists anywhere between
// startDir and the root. The walk is performed fresh on every call.
func Locate(startDir string) (path string, ok bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads and decodes the manifest at path.
//
// A missing file yields a FILE_NOT_FOUND error, other read failures an
// INVALID_PATH error, and JSON decode failures an INVALID_MANIFEST error.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read manifest %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest %s", path)
	}
	m.Path = path
	return &m, nil
}

// Find locates and loads the nearest manifest above startDir.
// Returns a MANIFEST_NOT_FOUND error if no package.json exists between
// startDir and the filesystem root.
func Find(startDir string) (*Manifest, error) {
	path, ok := Locate(startDir)
	if !ok {
		return nil, errors.New(errors.ErrCodeManifestNotFound,
			"no %s found from %s up to the filesystem root", Filename, startDir)
	}
	return Load(path)
}

// Dir returns the directory containing the manifest file.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}
