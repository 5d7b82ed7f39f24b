// Package app ties the session store to the dashboard views: it resolves
// client paths and keeps the routed view mounted while the user is signed in.
package app

import (
	"sync"

	"github.com/sangkips/insights/internal/client/session"
	"github.com/sangkips/insights/internal/client/view"
	"github.com/sangkips/insights/internal/domain/enum"
	"go.uber.org/zap"
)

// Client paths.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// Resolve applies the redirect rules to path. They depend only on whether
// st is authenticated: /login sends signed-in users to /dashboard,
// /dashboard sends everyone else to /login, and any other path is treated
// as /login. While a sign-in is in flight the path is left alone.
func Resolve(path string, st session.State) string {
	if st.IsLoading {
		return path
	}
	if st.Authenticated() {
		return PathDashboard
	}
	return PathLogin
}

// App is the running dashboard client.
type App struct {
	store   *session.Store
	backend view.Backend
	log     *zap.Logger

	mu      sync.Mutex
	path    string
	current view.View
	// owner is the email the current view was mounted for.
	owner   string
	unsub   func()
}

// New starts at /login and follows every session change.
func New(store *session.Store, backend view.Backend, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		store:   store,
		backend: backend,
		log:     log,
		path:    PathLogin,
	}
	a.unsub = store.Subscribe(func(st session.State) {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.route(a.path, st)
	})
	a.Navigate(PathLogin)
	return a
}

// Navigate goes to path and returns where the user actually landed.
func (a *App) Navigate(path string) string {
	st := a.store.State()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route(path, st)
}

// Path returns the current client path.
func (a *App) Path() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

// View returns the mounted dashboard, or nil outside /dashboard.
func (a *App) View() view.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Close unmounts the current view and stops following the session.
func (a *App) Close() {
	a.unsub()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unmount()
}

// route must be called with mu held.
func (a *App) route(path string, st session.State) string {
	target := Resolve(path, st)
	a.path = target
	if st.IsLoading {
		return target
	}

	if target != PathDashboard {
		a.unmount()
		return target
	}

	email := st.Identity.Email
	if a.current != nil && a.owner == email {
		return target
	}
	a.unmount()
	kind := enum.ViewForEmail(email)
	a.current = view.New(kind, a.backend, a.log)
	a.owner = email
	a.current.Mount()
	a.log.Debug("mounted view", zap.Stringer("kind", kind), zap.String("email", email))
	return target
}

func (a *App) unmount() {
	if a.current == nil {
		return
	}
	a.current.Unmount()
	a.current = nil
	a.owner = ""
}
