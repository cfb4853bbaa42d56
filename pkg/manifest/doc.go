// Package manifest locates and queries Node.js package manifests.
//
// A manifest is the package.json file nearest to a starting directory,
// found by walking parent directories up to the filesystem root. The
// package answers membership questions against the manifest's declared
// dependencies and devDependencies; version specifiers are read but never
// interpreted.
//
// The starting directory is always an explicit parameter. Callers that want
// the process working directory pass ".".
package manifest
