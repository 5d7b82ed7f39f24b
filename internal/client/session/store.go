// Package session holds the process-wide authentication state of the
// dashboard client.
package session

import (
	"context"
	"sync"

	"github.com/sangkips/insights/internal/domain/entity"
	"go.uber.org/zap"
)

// Authenticator performs the actual sign-in against the backend.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*entity.Identity, error)
	SignOut(ctx context.Context) error
}

// State is a snapshot of the session. Identity is nil when signed out.
type State struct {
	Identity  *entity.Identity
	IsLoading bool
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.Identity.IsAuthenticated()
}

// Store is the single source of authentication state. It changes only
// through SignIn and SignOut; every change is pushed to subscribers.
type Store struct {
	auth Authenticator
	log  *zap.Logger

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewStore returns a signed-out store.
func NewStore(auth Authenticator, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		auth: auth,
		log:  log,
		subs: make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

// Subscribe registers fn for every state change and returns a function
// that removes it. fn runs on the goroutine that changed the state.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// SignIn authenticates and replaces the identity. On failure the session is
// left signed out and the error is returned.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.set(State{IsLoading: true})

	ident, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		s.log.Info("sign-in failed", zap.String("email", email), zap.Error(err))
		s.set(State{})
		return err
	}

	s.set(State{Identity: ident})
	return nil
}

// SignOut clears the identity. The local state is cleared even when the
// backend call fails.
func (s *Store) SignOut(ctx context.Context) error {
	err := s.auth.SignOut(ctx)
	if err != nil {
		s.log.Warn("sign-out failed", zap.Error(err))
	}
	s.set(State{})
	return err
}

func (s *Store) set(next State) {
	s.mu.Lock()
	s.state = next
	snapshot := s.copyState()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// copyState must be called with mu held.
func (s *Store) copyState() State {
	out := State{IsLoading: s.state.IsLoading}
	if s.state.Identity != nil {
		ident := *s.state.Identity
		out.Identity = &ident
	}
	return out
}
