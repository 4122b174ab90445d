package services

import (
	"context"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

// CartService issues the four cart mutations plus the authoritative list
// call. Mutation response bodies are ignored; the cart store refetches after
// every successful mutation instead of patching locally.
type CartService struct {
	client *api.Client
}

type AddItemRequest struct {
	MenuItemID          int    `json:"menu_item_id" validate:"required,gt=0"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

type UpdateItemRequest struct {
	CartItemID int `json:"cart_item_id" validate:"required,gt=0"`
	Quantity   int `json:"quantity" validate:"required"`
}

type removeItemRequest struct {
	CartItemID int `json:"cart_item_id"`
}

// List returns the session's cart. A 404 means no cart has been provisioned
// yet; callers are expected to treat that as absence, not failure.
func (s *CartService) List(ctx context.Context) (*types.Cart, error) {
	var out types.Cart
	if err := s.client.Do(ctx, http.MethodGet, "/orders/cart/list_cart/", "cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CartService) AddItem(ctx context.Context, req AddItemRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, "/orders/cart/add_item/", "cart", req, nil)
}

// UpdateItem sends the new absolute quantity, not a delta. The server decides
// what quantities it accepts; no clamping happens here.
func (s *CartService) UpdateItem(ctx context.Context, req UpdateItemRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPut, "/orders/cart/update_item/", "cart", req, nil)
}

// RemoveItem deletes one line item; the id travels in the delete body.
func (s *CartService) RemoveItem(ctx context.Context, cartItemID int) error {
	return s.client.Do(ctx, http.MethodDelete, "/orders/cart/remove_item/", "cart", removeItemRequest{CartItemID: cartItemID}, nil)
}

func (s *CartService) Clear(ctx context.Context) error {
	return s.client.Do(ctx, http.MethodPost, "/orders/cart/clear_cart/", "cart", nil, nil)
}
