package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/internal/apitest"
	"github.com/heddiekitchen/storefront-client/internal/services"
	"github.com/heddiekitchen/storefront-client/internal/storage"
	pkgerrors "github.com/heddiekitchen/storefront-client/pkg/errors"
)

// Full wiring: client reads the credential from storage, the session store
// subscribes to the client's invalidation broadcast. A 401 from any endpoint
// must empty both memory and storage before the error reaches the caller.
func TestStaleCredentialClearsSessionEndToEnd(t *testing.T) {
	server := apitest.NewServer()
	t.Cleanup(server.Close)

	mem := storage.NewMemoryStore()
	client, err := api.NewClient(server.URL, api.WithTokenSource(api.StorageTokenSource(mem)))
	require.NoError(t, err)
	sess := NewSessionStore(mem, client, nil)
	svc := services.New(client)

	// A credential the server will not accept.
	require.NoError(t, sess.SetUser(sessionUser(), nil, "stale-token"))
	require.True(t, sess.IsAuthenticated())

	_, err = svc.Cart.List(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnauthorized(err))

	assert.False(t, sess.IsAuthenticated())
	_, getErr := mem.Get(storage.KeyToken)
	assert.ErrorIs(t, getErr, storage.ErrNotFound)
	_, getErr = mem.Get(storage.KeyUser)
	assert.ErrorIs(t, getErr, storage.ErrNotFound)
}

func TestUnauthorizedFromAnyEndpointInvalidates(t *testing.T) {
	server := apitest.NewServer()
	t.Cleanup(server.Close)
	token := server.SeedUser("ada")

	mem := storage.NewMemoryStore()
	client, err := api.NewClient(server.URL, api.WithTokenSource(api.StorageTokenSource(mem)))
	require.NoError(t, err)
	sess := NewSessionStore(mem, client, nil)
	svc := services.New(client)

	require.NoError(t, sess.SetUser(sessionUser(), nil, token))

	// The valid credential works until the server revokes it mid-session.
	_, err = svc.Menu.Items(context.Background(), services.MenuItemFilter{})
	require.NoError(t, err)
	require.True(t, sess.IsAuthenticated())

	server.FailNext("GET", "/menu/items/", 401, `{"detail": "Invalid token."}`)
	_, err = svc.Menu.Items(context.Background(), services.MenuItemFilter{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnauthorized(err))
	assert.False(t, sess.IsAuthenticated())
}

func TestCartFlowThroughStores(t *testing.T) {
	server := apitest.NewServer()
	t.Cleanup(server.Close)
	token := server.SeedUser("ada")

	mem := storage.NewMemoryStore()
	client, err := api.NewClient(server.URL, api.WithTokenSource(api.StorageTokenSource(mem)))
	require.NoError(t, err)
	sess := NewSessionStore(mem, client, nil)
	require.NoError(t, sess.SetUser(sessionUser(), nil, token))

	svc := services.New(client)
	ui := NewUIStore()
	cart := NewCartStore(svc.Cart, ui, nil)
	ctx := context.Background()

	require.NoError(t, cart.FetchCart(ctx))
	assert.Nil(t, cart.Cart(), "no cart before the first add")

	require.NoError(t, cart.AddItem(ctx, 1, 3))
	require.NotNil(t, cart.Cart())
	assert.Equal(t, 3, cart.Cart().ItemCount)

	require.NoError(t, cart.ClearCart(ctx))
	assert.Nil(t, cart.Cart())
	assert.False(t, ui.IsLoading())
}
