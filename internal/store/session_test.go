package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heddiekitchen/storefront-client/internal/storage"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type fakeInvalidationSource struct {
	handlers []func()
}

func (f *fakeInvalidationSource) OnSessionInvalid(fn func()) {
	f.handlers = append(f.handlers, fn)
}

func (f *fakeInvalidationSource) fire() {
	for _, fn := range f.handlers {
		fn()
	}
}

// failingStore rejects writes to a single key so rollback paths can be
// exercised.
type failingStore struct {
	*storage.MemoryStore
	failKey string
}

func (f *failingStore) Set(key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(key, value)
}

func sessionUser() *types.User {
	return &types.User{ID: 1, Username: "ada", Email: "ada@example.com", FirstName: "Ada"}
}

func TestSetUserPersistsFullTriple(t *testing.T) {
	mem := storage.NewMemoryStore()
	sess := NewSessionStore(mem, nil, nil)

	profile := &types.UserProfile{ID: 1, Phone: "555-0100", Role: "customer"}
	require.NoError(t, sess.SetUser(sessionUser(), profile, "tok-abc"))

	rawUser, err := mem.Get(storage.KeyUser)
	require.NoError(t, err)
	var stored types.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &stored))
	assert.Equal(t, "ada", stored.Username)

	rawToken, err := mem.Get(storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", rawToken)

	_, err = mem.Get(storage.KeyProfile)
	assert.NoError(t, err)
	assert.True(t, sess.IsAuthenticated())
}

func TestSetUserWithoutTokenSkipsPersistence(t *testing.T) {
	mem := storage.NewMemoryStore()
	sess := NewSessionStore(mem, nil, nil)

	require.NoError(t, sess.SetUser(sessionUser(), nil, ""))

	_, err := mem.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound, "an incomplete session must never hit storage")
	assert.False(t, sess.IsAuthenticated())
}

func TestPersistFailureRollsBackPartialWrites(t *testing.T) {
	backing := &failingStore{MemoryStore: storage.NewMemoryStore(), failKey: storage.KeyToken}
	sess := NewSessionStore(backing, nil, nil)

	err := sess.SetUser(sessionUser(), nil, "tok-abc")
	require.Error(t, err)

	// The user and profile keys landed before the token write failed and must
	// have been removed again.
	_, getErr := backing.Get(storage.KeyUser)
	assert.ErrorIs(t, getErr, storage.ErrNotFound)
	_, getErr = backing.Get(storage.KeyProfile)
	assert.ErrorIs(t, getErr, storage.ErrNotFound)
}

func TestLogoutRemovesAllKeys(t *testing.T) {
	mem := storage.NewMemoryStore()
	sess := NewSessionStore(mem, nil, nil)
	require.NoError(t, sess.SetUser(sessionUser(), nil, "tok-abc"))

	require.NoError(t, sess.Logout())

	for _, key := range []string{storage.KeyUser, storage.KeyProfile, storage.KeyToken} {
		_, err := mem.Get(key)
		assert.ErrorIs(t, err, storage.ErrNotFound, "key %q should be gone", key)
	}
	assert.Nil(t, sess.User())
	assert.Empty(t, sess.Token())
	assert.False(t, sess.IsAuthenticated())
}

func TestRestoreFromStorageOnConstruction(t *testing.T) {
	mem := storage.NewMemoryStore()
	rawUser, err := json.Marshal(sessionUser())
	require.NoError(t, err)
	require.NoError(t, mem.Set(storage.KeyUser, string(rawUser)))
	require.NoError(t, mem.Set(storage.KeyToken, "tok-restored"))

	sess := NewSessionStore(mem, nil, nil)

	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "tok-restored", sess.Token())
	require.NotNil(t, sess.User())
	assert.Equal(t, "ada", sess.User().Username)
	assert.Nil(t, sess.Profile())
}

func TestPartialTripleRestoresAsLoggedOut(t *testing.T) {
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Set(storage.KeyToken, "tok-orphan"))

	sess := NewSessionStore(mem, nil, nil)

	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User())
	assert.Empty(t, sess.Token())
}

func TestCorruptUserRecordDiscarded(t *testing.T) {
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Set(storage.KeyUser, "{not json"))
	require.NoError(t, mem.Set(storage.KeyToken, "tok-abc"))

	sess := NewSessionStore(mem, nil, nil)

	assert.False(t, sess.IsAuthenticated())
}

func TestInvalidationBroadcastClearsSession(t *testing.T) {
	mem := storage.NewMemoryStore()
	source := &fakeInvalidationSource{}
	sess := NewSessionStore(mem, source, nil)
	require.NoError(t, sess.SetUser(sessionUser(), nil, "tok-abc"))
	require.Len(t, source.handlers, 1, "constructor must subscribe exactly once")

	source.fire()

	assert.False(t, sess.IsAuthenticated())
	_, err := mem.Get(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = mem.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
