// Package store holds the application state: the session's standing and
// the loaded template collection, mutated only through named actions.
// Every action sets the loading flag before its backend call and clears
// it on the way out, success or failure, so observers never see a stuck
// loading state.
package store

import (
	"context"
	"sync"

	"github.com/aiscreen-io/canvasctl/internal/constants"
	"github.com/aiscreen-io/canvasctl/internal/logging"
	"github.com/aiscreen-io/canvasctl/internal/models"
	"github.com/aiscreen-io/canvasctl/internal/templates"
)

// SessionState is the session's standing as the store knows it.
type SessionState int

const (
	// SessionUnknown means rehydration has not run yet.
	SessionUnknown SessionState = iota

	// SessionAuthenticated means a plausible token is loaded.
	SessionAuthenticated

	// SessionAnonymous means there is no session.
	SessionAnonymous
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Repository is the slice of the template repository the store drives.
type Repository interface {
	List(ctx context.Context, filters models.Filters) (*models.TemplatePage, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	Create(ctx context.Context, input templates.Input) (*models.Template, error)
	Update(ctx context.Context, id string, input templates.Input) (*models.Template, error)
	Delete(ctx context.Context, id string) error
	ListTags(ctx context.Context) []string
}

// Sessions is the slice of the session manager the store drives.
type Sessions interface {
	InitializeAuth() error
	IsAuthenticated() bool
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Logout() error
}

// Store is the single mutable application state.
type Store struct {
	repo     Repository
	sessions Sessions
	logger   *logging.Logger

	// actionMu serializes actions; stateMu guards the fields below.
	actionMu sync.Mutex
	stateMu  sync.RWMutex

	sessionState SessionState
	user         *models.User
	authError    string

	templates  []models.Template
	current    *models.Template
	apiTags    []string
	filters    models.Filters
	pagination models.Pagination
	loading    bool
	lastError  string
}

// New creates an empty store.
func New(repo Repository, sessions Sessions, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Store{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
		filters:  models.Filters{},
		pagination: models.Pagination{
			Page:  constants.DefaultPage,
			Limit: constants.DefaultPageLimit,
		},
	}
}

// beginAction flips the loading flag on and clears the previous error.
// The returned func is deferred by every action so the flag always
// clears, even on a panic in the repository layer.
func (s *Store) beginAction() func() {
	s.stateMu.Lock()
	s.loading = true
	s.lastError = ""
	s.stateMu.Unlock()

	return func() {
		s.stateMu.Lock()
		s.loading = false
		s.stateMu.Unlock()
	}
}

func (s *Store) setError(err error) {
	s.stateMu.Lock()
	s.lastError = err.Error()
	s.stateMu.Unlock()
}

// InitializeSession rehydrates the persisted session and settles the
// state machine out of Unknown. Safe to call more than once.
func (s *Store) InitializeSession() error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	if err := s.sessions.InitializeAuth(); err != nil {
		s.stateMu.Lock()
		s.sessionState = SessionAnonymous
		s.authError = err.Error()
		s.stateMu.Unlock()
		return err
	}

	s.stateMu.Lock()
	if s.sessions.IsAuthenticated() {
		s.sessionState = SessionAuthenticated
	} else {
		s.sessionState = SessionAnonymous
	}
	s.stateMu.Unlock()
	return nil
}

// Login runs the login action. A failure leaves the session Anonymous
// with the error recorded; success moves it to Authenticated.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	defer s.beginAction()()

	result, err := s.sessions.Login(ctx, creds)
	if err != nil {
		s.stateMu.Lock()
		s.sessionState = SessionAnonymous
		s.authError = err.Error()
		s.user = nil
		s.stateMu.Unlock()
		s.setError(err)
		return nil, err
	}

	s.stateMu.Lock()
	s.sessionState = SessionAuthenticated
	s.authError = ""
	s.user = result.User
	s.stateMu.Unlock()
	return result, nil
}

// Logout ends the session and drops all loaded template state, so a
// following login starts clean.
func (s *Store) Logout() error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	err := s.sessions.Logout()

	s.stateMu.Lock()
	s.sessionState = SessionAnonymous
	s.user = nil
	s.authError = ""
	s.templates = nil
	s.current = nil
	s.apiTags = nil
	s.stateMu.Unlock()
	return err
}

// MarkAnonymous records an externally detected session loss, such as the
// API client's 401 callback firing.
func (s *Store) MarkAnonymous() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.sessionState = SessionAnonymous
	s.user = nil
}

// FetchTemplates loads the current page under the current filters.
func (s *Store) FetchTemplates(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	defer s.beginAction()()

	s.stateMu.RLock()
	filters := s.filters
	filters.Page = s.pagination.Page
	filters.Limit = s.pagination.Limit
	s.stateMu.RUnlock()

	page, err := s.repo.List(ctx, filters)
	if err != nil {
		s.setError(err)
		return err
	}

	s.stateMu.Lock()
	s.templates = page.Items
	s.pagination = page.Pagination
	s.stateMu.Unlock()
	return nil
}

// FetchTemplate loads one template as the current item.
func (s *Store) FetchTemplate(ctx context.Context, id string) (*models.Template, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	defer s.beginAction()()

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	s.stateMu.Lock()
	s.current = item
	s.stateMu.Unlock()
	return item, nil
}

// CreateTemplate creates a template and prepends it to the loaded list.
func (s *Store) CreateTemplate(ctx context.Context, input templates.Input) (*models.Template, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	defer s.beginAction()()

	item, err := s.repo.Create(ctx, input)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	s.stateMu.Lock()
	if item.ID != "" {
		s.templates = append([]models.Template{*item}, s.templates...)
	}
	s.current = item
	s.stateMu.Unlock()
	return item, nil
}

// UpdateTemplate updates a template in place in the loaded list.
func (s *Store) UpdateTemplate(ctx context.Context, id string, input templates.Input) (*models.Template, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	defer s.beginAction()()

	item, err := s.repo.Update(ctx, id, input)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	s.stateMu.Lock()
	for i := range s.templates {
		if s.templates[i].ID == item.ID {
			s.templates[i] = *item
			break
		}
	}
	if s.current != nil && s.current.ID == item.ID {
		s.current = item
	}
	s.stateMu.Unlock()
	return item, nil
}

// DeleteTemplate removes a template from the backend and the loaded list.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	defer s.beginAction()()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.setError(err)
		return err
	}

	s.stateMu.Lock()
	kept := s.templates[:0]
	for _, t := range s.templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.templates = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.stateMu.Unlock()
	return nil
}

// FetchTags refreshes the API-sourced tag list. Failures inside the
// repository already degrade to an empty list, so this never errors.
func (s *Store) FetchTags(ctx context.Context) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	fetched := s.repo.ListTags(ctx)

	s.stateMu.Lock()
	s.apiTags = fetched
	s.stateMu.Unlock()
}

// SetFilters replaces the filter state and resets to the first page. The
// caller triggers the refetch.
func (s *Store) SetFilters(filters models.Filters) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.filters = filters
	s.pagination.Page = constants.DefaultPage
}

// SetPage moves pagination to the given page.
func (s *Store) SetPage(page int) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if page < 1 {
		page = constants.DefaultPage
	}
	s.pagination.Page = page
}

// ResetFilters clears the filter state and returns to the first page.
func (s *Store) ResetFilters() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.filters = models.Filters{}
	s.pagination.Page = constants.DefaultPage
}

// ClearError drops the recorded error.
func (s *Store) ClearError() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.lastError = ""
}

// ClearCurrent drops the current template.
func (s *Store) ClearCurrent() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.current = nil
}
