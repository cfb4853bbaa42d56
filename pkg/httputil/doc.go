// Package httputil provides HTTP helpers shared by registry clients:
// a file-based response cache and retry with exponential backoff.
//
// The cache stores JSON-marshalable values on disk keyed by SHA-256 of the
// cache key, with a TTL based on file modification time. Retry only repeats
// operations whose errors are wrapped with [RetryableError], so permanent
// failures (404s, validation errors) surface immediately.
package httputil
