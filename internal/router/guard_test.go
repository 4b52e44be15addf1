package router

import (
	"testing"

	"github.com/aiscreen-io/canvasctl/internal/store"
)

// fakeSessions lets tests script the rehydration outcome.
type fakeSessions struct {
	state      store.SessionState
	afterInit  store.SessionState
	initCalls  int
	initFailed error
}

func (f *fakeSessions) SessionState() store.SessionState { return f.state }

func (f *fakeSessions) InitializeSession() error {
	f.initCalls++
	if f.initFailed != nil {
		f.state = store.SessionAnonymous
		return f.initFailed
	}
	f.state = f.afterInit
	return nil
}

func TestResolveAuthenticatedPassesThrough(t *testing.T) {
	g := NewGuard(nil, &fakeSessions{state: store.SessionAuthenticated})

	d := g.Resolve("/template/42")
	if !d.Allowed {
		t.Fatalf("decision = %+v, want allowed", d)
	}
	if d.Route.Name != "template-edit" {
		t.Errorf("route = %q", d.Route.Name)
	}
}

func TestResolveRehydratesBeforeRedirecting(t *testing.T) {
	// Token on disk but not yet in memory: state starts Unknown and
	// rehydration succeeds.
	sessions := &fakeSessions{state: store.SessionUnknown, afterInit: store.SessionAuthenticated}
	g := NewGuard(nil, sessions)

	d := g.Resolve("/")
	if !d.Allowed {
		t.Fatalf("decision = %+v, want allowed after rehydration", d)
	}
	if sessions.initCalls != 1 {
		t.Errorf("initCalls = %d, want 1", sessions.initCalls)
	}
}

func TestResolveRedirectsToLoginPreservingTarget(t *testing.T) {
	sessions := &fakeSessions{state: store.SessionUnknown, afterInit: store.SessionAnonymous}
	g := NewGuard(nil, sessions)

	d := g.Resolve("/template/42/view")
	if d.Allowed {
		t.Fatal("expected redirect for anonymous session")
	}
	want := "/login?redirect=%2Ftemplate%2F42%2Fview"
	if d.RedirectTo != want {
		t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, want)
	}

	// The preserved target survives the round trip.
	if back := ReturnTarget(d.RedirectTo); back != "/template/42/view" {
		t.Errorf("ReturnTarget = %q", back)
	}
}

func TestResolveGuestRouteBouncesAuthenticatedUser(t *testing.T) {
	g := NewGuard(nil, &fakeSessions{state: store.SessionAuthenticated})

	d := g.Resolve("/login?redirect=%2Ftemplate%2F7")
	if d.Allowed {
		t.Fatal("expected redirect away from guest route")
	}
	if d.RedirectTo != "/template/7" {
		t.Errorf("RedirectTo = %q, want preserved target", d.RedirectTo)
	}

	// Without a preserved target, land on the default route.
	d = g.Resolve("/login")
	if d.RedirectTo != "/" {
		t.Errorf("RedirectTo = %q, want /", d.RedirectTo)
	}
}

func TestResolveGuestRouteAllowsAnonymousUser(t *testing.T) {
	g := NewGuard(nil, &fakeSessions{state: store.SessionAnonymous, afterInit: store.SessionAnonymous})

	d := g.Resolve("/login")
	if !d.Allowed {
		t.Fatalf("decision = %+v, want allowed", d)
	}
}

func TestResolveUnknownPathFallsBack(t *testing.T) {
	g := NewGuard(nil, &fakeSessions{state: store.SessionAuthenticated})

	d := g.Resolve("/no/such/route")
	if d.Allowed || d.RedirectTo != "/" {
		t.Errorf("decision = %+v, want fallback redirect", d)
	}
}

func TestTableMatching(t *testing.T) {
	table := DefaultTable()
	tests := []struct {
		target   string
		wantName string
		wantOK   bool
	}{
		{"/", "home", true},
		{"/login", "login", true},
		{"/login?redirect=%2F", "login", true},
		{"/template/new", "template-create", true},
		{"/template/123", "template-edit", true},
		{"/template/123/view", "template-view", true},
		{"/template", "", false},
		{"/template/123/edit", "", false},
	}

	for _, tt := range tests {
		r, ok := table.Match(tt.target)
		if ok != tt.wantOK || (ok && r.Name != tt.wantName) {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.target, r.Name, ok, tt.wantName, tt.wantOK)
		}
	}
}
