package npm

import (
	"context"
	"encoding/json"
	"maps"
	"net"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/depkit/depkit/pkg/deps"
	"github.com/depkit/depkit/pkg/errors"
	"github.com/depkit/depkit/pkg/httputil"
)

// DefaultRegistryURL is the public npm registry endpoint.
const DefaultRegistryURL = "https://registry.npmjs.org"

const httpTimeout = 10 * time.Second

// Client fetches package metadata from an npm-compatible registry.
// Responses are cached on disk; transient failures are retried with
// exponential backoff.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
}

// NewClient creates a registry client with the default cache directory.
// An empty baseURL selects [DefaultRegistryURL].
func NewClient(baseURL string, cacheTTL time.Duration) (*Client, error) {
	cache, err := httputil.NewCache("", cacheTTL)
	if err != nil {
		return nil, err
	}
	return NewClientWithCache(baseURL, cache), nil
}

// NewClientWithCache creates a registry client backed by an explicit cache.
func NewClientWithCache(baseURL string, cache *httputil.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchPackage returns metadata for the latest published version of pkg.
// When refresh is true the cache is bypassed and the entry rewritten.
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*deps.Package, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))
	key := "npm:" + pkg

	var info deps.Package
	err := c.cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchVersions returns all published versions of pkg, newest first.
// Versions that do not parse as semver sort after those that do,
// lexicographically.
func (c *Client) FetchVersions(ctx context.Context, pkg string, refresh bool) ([]string, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))
	key := "npm-versions:" + pkg

	var versions []string
	err := c.cached(ctx, key, refresh, &versions, func() error {
		var data registryResponse
		if err := c.get(ctx, c.baseURL+"/"+pkg, &data); err != nil {
			return err
		}
		versions = slices.Collect(maps.Keys(data.Versions))
		sortVersionsDesc(versions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *deps.Package) error {
	var data registryResponse
	if err := c.get(ctx, c.baseURL+"/"+pkg, &data); err != nil {
		return err
	}

	latest := data.DistTags.Latest
	v, ok := data.Versions[latest]
	if !ok {
		return errors.New(errors.ErrCodeInvalidPackage, "npm package %s: version %s not found", pkg, latest)
	}

	*info = deps.Package{
		Name:         data.Name,
		Version:      latest,
		Description:  v.Description,
		License:      extractField(v.License, "type"),
		Author:       extractField(v.Author, "name"),
		Repository:   normalizeRepoURL(extractField(v.Repository, "url")),
		HomePage:     v.HomePage,
		Dependencies: slices.Sorted(maps.Keys(v.Dependencies)),
	}
	return nil
}

// cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	_ = c.cache.Set(key, v)
	return nil
}

// get performs an HTTP GET and JSON-decodes the response into v.
func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Deadlines won't improve with retries; other transport errors might.
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return errors.Wrap(errors.ErrCodeTimeout, err, "GET %s timed out", url)
		}
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, url); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int, url string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodePackageNotFound, "not found: %s", url)
	case code == http.StatusTooManyRequests:
		return &errors.RateLimitedError{Message: url}
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, code)
	}
}

func sortVersionsDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, ei := semver.NewVersion(versions[i])
		vj, ej := semver.NewVersion(versions[j])
		switch {
		case ei == nil && ej == nil:
			return vi.GreaterThan(vj)
		case ei == nil:
			return true
		case ej == nil:
			return false
		default:
			return versions[i] > versions[j]
		}
	})
}

// extractField reads a string-or-object registry field, e.g. license and
// author entries that are either "MIT" or {"type": "MIT"}.
func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// normalizeRepoURL converts the repository URL formats seen in registry
// metadata (git@, git://, git+ prefixes) to canonical HTTPS form.
func normalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(s, ".git")
}

type registryResponse struct {
	Name     string                    `json:"name"`
	DistTags distTags                  `json:"dist-tags"`
	Versions map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Description  string            `json:"description"`
	License      any               `json:"license"`
	Author       any               `json:"author"`
	Repository   any               `json:"repository"`
	HomePage     string            `json:"homepage"`
	Dependencies map[string]string `json:"dependencies"`
}

var _ deps.Fetcher = (*Client)(nil)
