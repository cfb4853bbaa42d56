package manifest

// CheckOptions selects which manifest fields a query searches.
// With both fields false every requested package reports false.
type CheckOptions struct {
	Dependencies    bool
	DevDependencies bool
}

// Check reports, for each requested package name, whether it is declared in
// the selected field(s) of the nearest manifest above startDir.
//
// The whole call fails with a MANIFEST_NOT_FOUND error when no manifest
// exists (no partial result), and with an INVALID_MANIFEST error when the
// file is not valid JSON. A manifest that lacks a selected field is treated
// as declaring nothing, not as an error.
//
// Matching is exact and case-sensitive. The result contains exactly the
// requested names; an empty pkgs slice yields an empty map.
func Check(startDir string, pkgs []string, opts CheckOptions) (map[string]bool, error) {
	m, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	return m.Check(pkgs, opts), nil
}

// CheckDeps reports membership in the manifest's dependencies field only.
func CheckDeps(startDir string, pkgs []string) (map[string]bool, error) {
	return Check(startDir, pkgs, CheckOptions{Dependencies: true})
}

// CheckDevDeps reports membership in the manifest's devDependencies field only.
func CheckDevDeps(startDir string, pkgs []string) (map[string]bool, error) {
	return Check(startDir, pkgs, CheckOptions{DevDependencies: true})
}

// Check answers membership queries against an already loaded manifest.
func (m *Manifest) Check(pkgs []string, opts CheckOptions) map[string]bool {
	result := make(map[string]bool, len(pkgs))
	for _, pkg := range pkgs {
		result[pkg] = m.Declares(pkg, opts)
	}
	return result
}

// Declares reports whether pkg appears in the selected field(s).
func (m *Manifest) Declares(pkg string, opts CheckOptions) bool {
	if opts.Dependencies {
		if _, ok := m.Dependencies[pkg]; ok {
			return true
		}
	}
	if opts.DevDependencies {
		if _, ok := m.DevDependencies[pkg]; ok {
			return true
		}
	}
	return false
}

// DirectDeps returns the declared package names from the selected field(s),
// deduplicated, in no particular order.
func (m *Manifest) DirectDeps(opts CheckOptions) []string {
	seen := make(map[string]bool)
	var deps []string
	collect := func(field map[string]string) {
		for name := range field {
			if !seen[name] {
				seen[name] = true
				deps = append(deps, name)
			}
		}
	}
	if opts.Dependencies {
		collect(m.Dependencies)
	}
	if opts.DevDependencies {
		collect(m.DevDependencies)
	}
	return deps
}
