package searchmock

import (
	"net/http"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Default matching rule: the pagination continuation is a POST to the search
// route carrying the Next-Action marker header. Everything else, the initial
// page GET included, is not a mock target.
const (
	DefaultActionMethod = http.MethodPost
	DefaultActionHeader = "Next-Action"
	DefaultPathPattern  = "/search"
)

// ActionMatcher decides whether an intercepted request is the application's
// page-continuation action call. All three conditions must hold: the HTTP
// method, the presence of the marker header, and the path glob. The query
// string is ignored.
type ActionMatcher struct {
	// Method is the required HTTP method. Empty means DefaultActionMethod.
	Method string
	// HeaderName is the marker header whose presence identifies an action
	// call. Empty means DefaultActionHeader.
	HeaderName string
	// PathPattern is a doublestar glob matched against the URL path.
	// Empty means DefaultPathPattern.
	PathPattern string
}

func (m ActionMatcher) method() string {
	if m.Method == "" {
		return DefaultActionMethod
	}
	return m.Method
}

func (m ActionMatcher) headerName() string {
	if m.HeaderName == "" {
		return DefaultActionHeader
	}
	return m.HeaderName
}

func (m ActionMatcher) pathPattern() string {
	if m.PathPattern == "" {
		return DefaultPathPattern
	}
	return m.PathPattern
}

// Matches reports whether r is a page-continuation action call.
func (m ActionMatcher) Matches(r *http.Request) bool {
	if r == nil {
		return false
	}
	if !strings.EqualFold(r.Method, m.method()) {
		return false
	}
	if r.Header.Get(m.headerName()) == "" {
		return false
	}
	ok, err := doublestar.Match(m.pathPattern(), r.URL.Path)
	if err != nil {
		return false
	}
	return ok
}
