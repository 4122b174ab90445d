package store

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heddiekitchen/storefront-client/internal/services"
	pkgerrors "github.com/heddiekitchen/storefront-client/pkg/errors"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type stubCartAPI struct {
	cart      *types.Cart
	listErr   error
	addErr    error
	updateErr error
	removeErr error
	clearErr  error

	listCalls   int
	addCalls    int
	removeCalls int
	clearCalls  int
	lastAdd     services.AddItemRequest
	lastUpdate  services.UpdateItemRequest
	lastRemove  int
}

func (s *stubCartAPI) List(ctx context.Context) (*types.Cart, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.cart, nil
}

func (s *stubCartAPI) AddItem(ctx context.Context, req services.AddItemRequest) error {
	s.addCalls++
	s.lastAdd = req
	return s.addErr
}

func (s *stubCartAPI) UpdateItem(ctx context.Context, req services.UpdateItemRequest) error {
	s.lastUpdate = req
	return s.updateErr
}

func (s *stubCartAPI) RemoveItem(ctx context.Context, cartItemID int) error {
	s.removeCalls++
	s.lastRemove = cartItemID
	return s.removeErr
}

func (s *stubCartAPI) Clear(ctx context.Context) error {
	s.clearCalls++
	return s.clearErr
}

func fixtureCart(id int) *types.Cart {
	price := decimal.NewFromFloat(12.00)
	return &types.Cart{
		ID: id,
		Items: []types.CartItem{{
			ID:         21,
			MenuItem:   types.MenuItem{ID: 3, Name: "Jollof Rice", Price: decimal.NewFromFloat(14.00)},
			Quantity:   2,
			PriceAtAdd: &price,
			Subtotal:   decimal.NewFromFloat(24.00),
			AddedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}},
		Total:     decimal.NewFromFloat(24.00),
		ItemCount: 2,
		UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAddItemRefetchesInsteadOfPatching(t *testing.T) {
	fixture := fixtureCart(7)
	svc := &stubCartAPI{cart: fixture}
	store := NewCartStore(svc, nil, nil)

	require.NoError(t, store.AddItem(context.Background(), 3, 2))

	assert.Equal(t, 1, svc.addCalls)
	assert.Equal(t, 1, svc.listCalls, "a successful add must trigger exactly one refetch")
	// The store's cart is the refetched server payload verbatim, not a local
	// merge.
	assert.Equal(t, fixture, store.Cart())
	assert.Equal(t, services.AddItemRequest{MenuItemID: 3, Quantity: 2}, svc.lastAdd)
	assert.Empty(t, store.Err())
}

func TestUpdateItemSendsAbsoluteQuantity(t *testing.T) {
	svc := &stubCartAPI{cart: fixtureCart(7)}
	store := NewCartStore(svc, nil, nil)

	require.NoError(t, store.UpdateItem(context.Background(), 21, 5))
	assert.Equal(t, services.UpdateItemRequest{CartItemID: 21, Quantity: 5}, svc.lastUpdate)
	assert.Equal(t, 1, svc.listCalls)
}

func TestFetchCart404IsNotAnError(t *testing.T) {
	svc := &stubCartAPI{listErr: pkgerrors.NewAPIError(http.StatusNotFound, "")}
	store := NewCartStore(svc, nil, nil)

	require.NoError(t, store.FetchCart(context.Background()))
	assert.Nil(t, store.Cart())
	assert.Empty(t, store.Err())
}

func TestFetchCartFailureKeepsPreviousCart(t *testing.T) {
	fixture := fixtureCart(7)
	svc := &stubCartAPI{cart: fixture}
	store := NewCartStore(svc, nil, nil)
	require.NoError(t, store.FetchCart(context.Background()))

	svc.listErr = pkgerrors.NewAPIError(http.StatusBadGateway, "")
	err := store.FetchCart(context.Background())
	require.Error(t, err)

	// Stale-but-present beats blanking the view on a transient failure.
	assert.Equal(t, fixture, store.Cart())
	assert.Equal(t, "Failed to fetch cart", store.Err())
}

func TestMutationFailurePreservesCartAndReturnsError(t *testing.T) {
	fixture := fixtureCart(7)
	svc := &stubCartAPI{cart: fixture}
	store := NewCartStore(svc, nil, nil)
	require.NoError(t, store.FetchCart(context.Background()))
	listCallsBefore := svc.listCalls

	svc.removeErr = pkgerrors.NewAPIError(http.StatusInternalServerError, "boom")
	err := store.RemoveItem(context.Background(), 21)
	require.Error(t, err)

	assert.Equal(t, fixture, store.Cart(), "failed mutation must leave the cart untouched")
	assert.Equal(t, "boom", store.Err(), "server-provided message wins over the generic one")
	assert.Equal(t, listCallsBefore, svc.listCalls, "no refetch after a failed mutation")
}

func TestMutationFailureFallsBackToGenericMessage(t *testing.T) {
	svc := &stubCartAPI{addErr: pkgerrors.NewAPIError(http.StatusInternalServerError, "")}
	store := NewCartStore(svc, nil, nil)

	require.Error(t, store.AddItem(context.Background(), 3, 1))
	assert.Equal(t, "Failed to add item to cart", store.Err())
}

func TestClearCartSetsNilWithoutRefetch(t *testing.T) {
	svc := &stubCartAPI{cart: fixtureCart(7)}
	store := NewCartStore(svc, nil, nil)
	require.NoError(t, store.FetchCart(context.Background()))
	listCallsBefore := svc.listCalls

	require.NoError(t, store.ClearCart(context.Background()))
	assert.Nil(t, store.Cart())
	assert.Equal(t, listCallsBefore, svc.listCalls, "clear needs no refetch; the outcome is known")

	// Clearing an already-empty cart is a no-op, not a failure.
	require.NoError(t, store.ClearCart(context.Background()))
	assert.Nil(t, store.Cart())
	assert.Empty(t, store.Err())
	assert.Equal(t, 2, svc.clearCalls)
}

type recordingSink struct {
	transitions []bool
}

func (r *recordingSink) SetLoading(loading bool) {
	r.transitions = append(r.transitions, loading)
}

func TestLoadingFlagTogglesAroundOperations(t *testing.T) {
	sink := &recordingSink{}
	svc := &stubCartAPI{cart: fixtureCart(7)}
	store := NewCartStore(svc, sink, nil)

	require.NoError(t, store.FetchCart(context.Background()))

	require.NotEmpty(t, sink.transitions)
	assert.True(t, sink.transitions[0], "loading must be raised on entry")
	assert.False(t, sink.transitions[len(sink.transitions)-1], "loading must be cleared on exit")
	assert.False(t, store.IsLoading())
}

func TestLoadingFlagClearedOnFailure(t *testing.T) {
	sink := &recordingSink{}
	svc := &stubCartAPI{listErr: pkgerrors.NewAPIError(http.StatusServiceUnavailable, "")}
	store := NewCartStore(svc, sink, nil)

	require.Error(t, store.FetchCart(context.Background()))
	assert.False(t, store.IsLoading(), "cleanup must run regardless of outcome")
	assert.False(t, sink.transitions[len(sink.transitions)-1])
}

func TestSubscribeNotifiedOnStateChange(t *testing.T) {
	svc := &stubCartAPI{cart: fixtureCart(7)}
	store := NewCartStore(svc, nil, nil)

	notified := 0
	store.Subscribe(func() { notified++ })

	require.NoError(t, store.FetchCart(context.Background()))
	assert.Greater(t, notified, 0)
}
