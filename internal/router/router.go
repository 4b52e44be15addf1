// Package router models the navigation surface: a route table with auth
// metadata and a guard that decides, for each navigation target, whether
// to proceed or redirect. CLI commands consult the guard before running
// so auth gating behaves the same as it would in a UI shell.
package router

import (
	"net/url"
	"strings"
)

// Route describes one navigable destination.
type Route struct {
	Name string
	Path string

	// RequiresAuth gates the route behind an authenticated session.
	RequiresAuth bool

	// GuestOnly marks routes that authenticated users are bounced away
	// from, such as the login screen.
	GuestOnly bool
}

// Table is the route table. Unknown paths resolve to the fallback route.
type Table struct {
	routes   []Route
	fallback string
}

// DefaultTable returns the application's route table.
func DefaultTable() *Table {
	return NewTable("/", []Route{
		{Name: "home", Path: "/", RequiresAuth: true},
		{Name: "login", Path: "/login", GuestOnly: true},
		{Name: "template-create", Path: "/template/new", RequiresAuth: true},
		{Name: "template-edit", Path: "/template/:id", RequiresAuth: true},
		{Name: "template-view", Path: "/template/:id/view", RequiresAuth: true},
	})
}

// NewTable builds a route table with the given fallback path for
// unmatched targets.
func NewTable(fallback string, routes []Route) *Table {
	return &Table{routes: routes, fallback: fallback}
}

// Match finds the route for a target path, ignoring any query string.
// The bool result is false when the target hits the fallback instead.
func (t *Table) Match(target string) (Route, bool) {
	path := target
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	for _, r := range t.routes {
		if matchPath(r.Path, path) {
			return r, true
		}
	}
	return Route{}, false
}

// Fallback returns the path unknown targets redirect to.
func (t *Table) Fallback() string {
	return t.fallback
}

// matchPath compares a pattern like /template/:id against a concrete
// path segment by segment. A :param segment matches any non-empty
// segment.
func matchPath(pattern, path string) bool {
	ps := splitSegments(pattern)
	ts := splitSegments(path)
	if len(ps) != len(ts) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if ts[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != ts[i] {
			return false
		}
	}
	return true
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// RedirectQueryParam carries the original destination through a login
// redirect.
const RedirectQueryParam = "redirect"

// LoginRedirect builds the login path preserving the original target.
func LoginRedirect(loginPath, target string) string {
	q := url.Values{}
	q.Set(RedirectQueryParam, target)
	return loginPath + "?" + q.Encode()
}

// ReturnTarget extracts the preserved destination from a login-style
// target, or "" when none was carried.
func ReturnTarget(target string) string {
	i := strings.IndexByte(target, '?')
	if i < 0 {
		return ""
	}
	q, err := url.ParseQuery(target[i+1:])
	if err != nil {
		return ""
	}
	return q.Get(RedirectQueryParam)
}
