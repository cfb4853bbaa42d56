// Package npm talks to the npm ecosystem in two ways: [Client] queries the
// registry HTTP API (with file caching and retry), and [Installer] invokes
// the npm binary to add packages to a project.
package npm
