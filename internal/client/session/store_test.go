package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	err      error
	signOuts int
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (*entity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Identity{Email: email, Authenticated: true}, nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOuts++
	return nil
}

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func TestStore_SignInNotifiesLoadingThenIdentity(t *testing.T) {
	store := NewStore(&fakeAuth{}, zap.NewNop())
	rec := &recorder{}
	store.Subscribe(rec.record)

	require.NoError(t, store.SignIn(context.Background(), "manager@demo.com", "pw"))

	require.Len(t, rec.states, 2)
	assert.True(t, rec.states[0].IsLoading)
	assert.False(t, rec.states[0].Authenticated())
	assert.False(t, rec.states[1].IsLoading)
	assert.True(t, rec.states[1].Authenticated())
	assert.Equal(t, "manager@demo.com", store.State().Identity.Email)
}

func TestStore_FailedSignInStaysSignedOut(t *testing.T) {
	boom := errors.New("bad credentials")
	store := NewStore(&fakeAuth{err: boom}, nil)

	err := store.SignIn(context.Background(), "manager@demo.com", "wrong")

	assert.ErrorIs(t, err, boom)
	st := store.State()
	assert.Nil(t, st.Identity)
	assert.False(t, st.IsLoading)
}

func TestStore_SignOutClears(t *testing.T) {
	auth := &fakeAuth{}
	store := NewStore(auth, nil)
	require.NoError(t, store.SignIn(context.Background(), "investor@demo.com", "pw"))

	rec := &recorder{}
	store.Subscribe(rec.record)
	require.NoError(t, store.SignOut(context.Background()))

	assert.Equal(t, 1, auth.signOuts)
	require.Len(t, rec.states, 1)
	assert.False(t, rec.states[0].Authenticated())
	assert.Nil(t, store.State().Identity)
}

func TestStore_Unsubscribe(t *testing.T) {
	store := NewStore(&fakeAuth{}, nil)
	rec := &recorder{}
	unsubscribe := store.Subscribe(rec.record)
	unsubscribe()
	unsubscribe()

	require.NoError(t, store.SignIn(context.Background(), "manager@demo.com", "pw"))

	assert.Empty(t, rec.states)
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	store := NewStore(&fakeAuth{}, nil)
	require.NoError(t, store.SignIn(context.Background(), "manager@demo.com", "pw"))

	st := store.State()
	st.Identity.Email = "mallory@example.com"

	assert.Equal(t, "manager@demo.com", store.State().Identity.Email)
}
