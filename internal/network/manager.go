// Package network implements the Manager, the shared holder of the base
// endpoint that API paths are resolved against. It performs no I/O.
package network

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Manager holds a validated base URL. It is immutable after NewManager and
// safe for concurrent use.
type Manager struct {
	base *url.URL
}

// NewManager validates cfg and returns a Manager for its base URL.
// Returns ErrBaseURLEmpty or ErrBaseURLInvalid if the URL is unusable.
func NewManager(cfg types.NetworkConfig) (*Manager, error) {
	u, err := cfg.ParseBaseURL()
	if err != nil {
		return nil, err
	}
	// A trailing slash makes relative references resolve beneath the base
	// path instead of replacing its last segment.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Manager{base: u}, nil
}

// BaseURL returns a copy of the base URL.
func (m *Manager) BaseURL() *url.URL {
	u := *m.base
	return &u
}

// Endpoint resolves a relative reference such as "toys/42?full=1" against
// the base URL. Leading slashes are ignored. Returns ErrEndpointAbsolute for
// absolute URLs and ErrEndpointOutsideBase if ".." segments would climb
// above the base path.
func (m *Manager) Endpoint(ref string) (*url.URL, error) {
	r, err := url.Parse(strings.TrimLeft(ref, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", ref, err)
	}
	if r.IsAbs() || r.Host != "" {
		return nil, fmt.Errorf("%w: %q", types.ErrEndpointAbsolute, ref)
	}
	u := m.base.ResolveReference(r)
	if !m.contains(u) {
		return nil, fmt.Errorf("%w: %q is not under %s", types.ErrEndpointOutsideBase, ref, m.base)
	}
	return u, nil
}

// contains reports whether u lies beneath the base path. ResolveReference
// removes plain dot segments but leaves percent-encoded ones ("%2e%2e") in
// place, so the decoded segments are checked as well.
func (m *Manager) contains(u *url.URL) bool {
	if !strings.HasPrefix(u.Path, m.base.Path) {
		return false
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

// String returns the base URL.
func (m *Manager) String() string {
	return m.base.String()
}
