package router

import "github.com/aiscreen-io/canvasctl/internal/store"

// SessionSource is the slice of the store the guard consults.
type SessionSource interface {
	SessionState() store.SessionState
	InitializeSession() error
}

// Guard gates navigation on session state.
type Guard struct {
	table    *Table
	sessions SessionSource
}

// Decision is the outcome of resolving one navigation.
type Decision struct {
	// Allowed is true when navigation may proceed to Route.
	Allowed bool

	// Route is the matched route when Allowed.
	Route Route

	// RedirectTo is the path to go to instead when not Allowed.
	RedirectTo string
}

// NewGuard creates a guard over the given table and session source.
func NewGuard(table *Table, sessions SessionSource) *Guard {
	if table == nil {
		table = DefaultTable()
	}
	return &Guard{table: table, sessions: sessions}
}

// Resolve decides a navigation to target. For auth-gated routes an
// unauthenticated session gets one rehydration attempt before the
// navigation is redirected to login; without that ordering every fresh
// process start would bounce through the login screen even when a valid
// token sits on disk.
func (g *Guard) Resolve(target string) Decision {
	route, ok := g.table.Match(target)
	if !ok {
		return Decision{RedirectTo: g.table.Fallback()}
	}

	authenticated := g.sessions.SessionState() == store.SessionAuthenticated
	if !authenticated {
		// Rehydration is idempotent; the store runs it at most once.
		if err := g.sessions.InitializeSession(); err == nil {
			authenticated = g.sessions.SessionState() == store.SessionAuthenticated
		}
	}

	if route.RequiresAuth && !authenticated {
		return Decision{RedirectTo: LoginRedirect("/login", target)}
	}

	if route.GuestOnly && authenticated {
		if back := ReturnTarget(target); back != "" {
			return Decision{RedirectTo: back}
		}
		return Decision{RedirectTo: g.table.Fallback()}
	}

	return Decision{Allowed: true, Route: route}
}
