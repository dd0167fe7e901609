// Package registry validates package names and checks their existence
// against the public npm registry.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public npm registry's root.
const DefaultBaseURL = "https://registry.npmjs.org"

// existenceDeadline bounds every outbound existence check; the pipeline
// must never hang on a slow or unreachable registry.
const existenceDeadline = 5 * time.Second

var ErrInvalidName = errors.New("registry: invalid package name")

// nameRE approximates npm's published name rules: lowercase, digits,
// hyphen/underscore/dot, optionally scoped, total length at most 214
// bytes. It exists to reject bytes that would make an HTTP request
// invalid or be dangerous as shell arguments, run before any network
// traffic.
var nameRE = regexp.MustCompile(`^(@[a-z0-9][a-z0-9._-]*/)?[a-z0-9][a-z0-9._-]*$`)

// ValidateName performs the syntactic check; it never touches the
// network.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > 214 {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !nameRE.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ExistsResult is the outcome of one existence check.
type ExistsResult struct {
	Exists bool
	Err    error
}

// Client checks package existence against a registry over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client against the public npm registry.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: existenceDeadline},
	}
}

// WithBaseURL returns a Client pointed at a different registry root,
// used by tests to target a local httptest server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Exists issues an HTTPS GET with an abbreviated-metadata Accept header
// so only the response status is consumed. 200 means the package
// exists, 404 means it does not, anything else (including timeout or
// network failure) is an error with the reason preserved — registry
// errors distinct from 404 must never be treated as "exists".
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, existenceDeadline)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+name, nil)
	if err != nil {
		return false, fmt.Errorf("registry: building request for %q: %w", name, err)
	}
	req.Header.Set("Accept", "application/vnd.npm.install-v1+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("registry: checking %q: %w", name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("registry: unexpected status %d for %q", resp.StatusCode, name)
	}
}

// ExistsBatch runs Exists concurrently for every name and returns a map
// from name to result. Query ordering is not observable; the returned
// map is order-independent, and one failing check never cancels the
// others.
func (c *Client) ExistsBatch(ctx context.Context, names []string) map[string]ExistsResult {
	results := make(map[string]ExistsResult, len(names))
	if len(names) == 0 {
		return results
	}

	type entry struct {
		name   string
		result ExistsResult
	}
	out := make(chan entry, len(names))

	var g errgroup.Group
	for _, name := range names {
		name := name
		g.Go(func() error {
			exists, err := c.Exists(ctx, name)
			out <- entry{name: name, result: ExistsResult{Exists: exists, Err: err}}
			return nil
		})
	}
	_ = g.Wait()
	close(out)

	for e := range out {
		results[e.name] = e.result
	}
	return results
}
