package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/aiscreen-io/canvasctl/internal/api"
	"github.com/aiscreen-io/canvasctl/internal/config"
	"github.com/aiscreen-io/canvasctl/internal/notify"
	"github.com/aiscreen-io/canvasctl/internal/router"
	"github.com/aiscreen-io/canvasctl/internal/session"
	"github.com/aiscreen-io/canvasctl/internal/store"
	"github.com/aiscreen-io/canvasctl/internal/templates"
)

// app wires the full stack for one command invocation: config, session,
// API client, repository, store, route guard, and the toast channel with
// its terminal renderer.
type app struct {
	cfg        *config.Config
	sessions   *session.Manager
	repo       *templates.Repository
	store      *store.Store
	guard      *router.Guard
	dispatcher *notify.Dispatcher
	authToasts *notify.Auth
	tmplToasts *notify.Templates

	renderDone sync.WaitGroup
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultConfigPath()
}

func tokenPath() (string, error) {
	if tokenFile != "" {
		return tokenFile, nil
	}
	return config.DefaultTokenPath()
}

// newApp assembles the application for a command run. The session
// manager doubles as the API client's token source and its 401 handler,
// so a rejected token disappears everywhere at once.
func newApp() (*app, error) {
	cfgPath, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		dispatcher: notify.NewDispatcher(logger),
	}
	a.authToasts = notify.AuthMessages(a.dispatcher)
	a.tmplToasts = notify.TemplateMessages(a.dispatcher)

	tokPath, err := tokenPath()
	if err != nil {
		return nil, err
	}
	a.sessions = session.NewManager(session.NewFileTokenStore(tokPath), logger)

	client, err := api.NewClient(cfg.ResolveBaseURL(apiBaseURL), a.sessions, logger,
		api.WithOnUnauthorized(func() {
			a.sessions.HandleUnauthorized()
			if a.store != nil {
				a.store.MarkAnonymous()
			}
			a.authToasts.SessionExpired()
		}))
	if err != nil {
		return nil, err
	}
	a.sessions.AttachClient(client)

	a.repo = templates.NewRepository(client, cfg, logger,
		templates.WithUploadProgress(os.Stderr))
	a.store = store.New(a.repo, a.sessions, logger)
	a.guard = router.NewGuard(router.DefaultTable(), a.store)

	a.startToastRenderer()
	return a, nil
}

// startToastRenderer is the single toast subscriber: it prints events to
// stderr so command output on stdout stays machine-readable.
func (a *app) startToastRenderer() {
	events := a.dispatcher.Subscribe()
	a.renderDone.Add(1)
	go func() {
		defer a.renderDone.Done()
		for n := range events {
			marker := "*"
			switch n.Variant {
			case notify.VariantSuccess:
				marker = "+"
			case notify.VariantError:
				marker = "!"
			case notify.VariantWarning:
				marker = "~"
			}
			if n.Message != "" && n.Message != n.Title {
				fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", marker, n.Title, n.Message)
			} else {
				fmt.Fprintf(os.Stderr, "[%s] %s\n", marker, n.Title)
			}
		}
	}()
}

// Close flushes pending toasts and stops the renderer.
func (a *app) Close() {
	a.dispatcher.Close()
	a.renderDone.Wait()
}

// resolveRoute consults the route guard the way a UI shell would before
// navigating. Auth-gated commands refuse to run when the guard redirects
// to login.
func (a *app) resolveRoute(target string) error {
	decision := a.guard.Resolve(target)
	if decision.Allowed {
		return nil
	}
	if back := router.ReturnTarget(decision.RedirectTo); back != "" || decision.RedirectTo == "/login" {
		return fmt.Errorf("not signed in, run 'canvasctl login' first")
	}
	return fmt.Errorf("navigation to %s redirected to %s", target, decision.RedirectTo)
}
