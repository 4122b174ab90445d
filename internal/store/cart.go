// Package store holds the client-side state: the cart mirror, the session,
// and transient UI flags.
package store

import (
	"context"
	"sync"

	"github.com/heddiekitchen/storefront-client/internal/services"
	pkgerrors "github.com/heddiekitchen/storefront-client/pkg/errors"
	"github.com/heddiekitchen/storefront-client/pkg/logger"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

// CartAPI is the slice of the service layer the cart store depends on.
type CartAPI interface {
	List(ctx context.Context) (*types.Cart, error)
	AddItem(ctx context.Context, req services.AddItemRequest) error
	UpdateItem(ctx context.Context, req services.UpdateItemRequest) error
	RemoveItem(ctx context.Context, cartItemID int) error
	Clear(ctx context.Context) error
}

// LoadingSink receives the store's loading transitions, typically the UI
// flag store driving a spinner.
type LoadingSink interface {
	SetLoading(loading bool)
}

// CartStore mirrors the server's cart. Mutations never patch the local cart;
// the only way the cart value changes is a full refetch after a mutation
// completes, or an explicit clear. Overlapping mutations are not serialized:
// whichever refetch completes last wins, matching the original UI behavior.
type CartStore struct {
	svc  CartAPI
	ui   LoadingSink
	logg *logger.Logger

	mu        sync.Mutex
	cart      *types.Cart
	loading   bool
	errMsg    string
	listeners []func()
}

// NewCartStore builds the cart store. ui and logg may be nil.
func NewCartStore(svc CartAPI, ui LoadingSink, logg *logger.Logger) *CartStore {
	return &CartStore{svc: svc, ui: ui, logg: logg}
}

// Cart returns the current cart snapshot, nil when no cart exists.
func (s *CartStore) Cart() *types.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// IsLoading reports whether a store operation is in flight.
func (s *CartStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message, empty when clear.
func (s *CartStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Subscribe registers a callback invoked after every state change.
func (s *CartStore) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// FetchCart replaces the stored cart with the server response. A 404 means
// no cart has been provisioned yet and is not an error: the cart becomes nil
// with the error state left clear. Any other failure records an error and
// keeps the previous cart so a transient blip does not blank the UI.
func (s *CartStore) FetchCart(ctx context.Context) error {
	s.begin()
	defer s.end()

	cart, err := s.svc.List(ctx)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			s.setCart(nil)
			return nil
		}
		s.recordError(err, "Failed to fetch cart")
		return err
	}
	s.setCart(cart)
	return nil
}

// AddItem adds a menu item then resynchronizes via a full refetch. The local
// cart is never appended to directly. On failure the error is recorded and
// returned; the cart is untouched since nothing was mutated locally.
func (s *CartStore) AddItem(ctx context.Context, menuItemID, quantity int) error {
	s.begin()
	defer s.end()

	if err := s.svc.AddItem(ctx, services.AddItemRequest{MenuItemID: menuItemID, Quantity: quantity}); err != nil {
		s.recordError(err, "Failed to add item to cart")
		return err
	}
	// Refetch failures are already recorded in store state by FetchCart; the
	// mutation itself succeeded.
	_ = s.FetchCart(ctx)
	return nil
}

// UpdateItem sends the new absolute quantity then resynchronizes. Quantity
// clamping is the caller's concern; whatever the server accepts is mirrored.
func (s *CartStore) UpdateItem(ctx context.Context, cartItemID, quantity int) error {
	s.begin()
	defer s.end()

	if err := s.svc.UpdateItem(ctx, services.UpdateItemRequest{CartItemID: cartItemID, Quantity: quantity}); err != nil {
		s.recordError(err, "Failed to update item")
		return err
	}
	_ = s.FetchCart(ctx)
	return nil
}

// RemoveItem deletes a line item then resynchronizes.
func (s *CartStore) RemoveItem(ctx context.Context, cartItemID int) error {
	s.begin()
	defer s.end()

	if err := s.svc.RemoveItem(ctx, cartItemID); err != nil {
		s.recordError(err, "Failed to remove item from cart")
		return err
	}
	_ = s.FetchCart(ctx)
	return nil
}

// ClearCart empties the server-side cart then sets the local cart to nil
// directly; no refetch is needed since the outcome is known. Safe to call
// when the cart is already empty.
func (s *CartStore) ClearCart(ctx context.Context) error {
	s.begin()
	defer s.end()

	if err := s.svc.Clear(ctx); err != nil {
		s.recordError(err, "Failed to clear cart")
		return err
	}
	s.setCart(nil)
	return nil
}

func (s *CartStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
	if s.ui != nil {
		s.ui.SetLoading(true)
	}
	s.notify()
}

func (s *CartStore) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	if s.ui != nil {
		s.ui.SetLoading(false)
	}
	s.notify()
}

func (s *CartStore) setCart(cart *types.Cart) {
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	s.notify()
}

func (s *CartStore) recordError(err error, fallback string) {
	msg := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.ServerMessage() != "" {
		msg = typed.ServerMessage()
	}
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	if s.logg != nil {
		s.logg.Error(context.Background(), msg, err)
	}
	s.notify()
}

func (s *CartStore) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
