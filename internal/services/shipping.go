package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type ShippingService struct {
	client *api.Client
}

type QuoteRequest struct {
	DestinationID int     `json:"destination_id" validate:"required,gt=0"`
	WeightKg      float64 `json:"weight_kg,omitempty"`
}

type CreateShippingOrderRequest struct {
	DestinationID   int     `json:"destination_id" validate:"required,gt=0"`
	WeightKg        float64 `json:"weight_kg" validate:"required,gt=0"`
	PickupAddress   string  `json:"pickup_address" validate:"required"`
	ContactPhone    string  `json:"contact_phone" validate:"required"`
	DeclaredValue   string  `json:"declared_value,omitempty"`
	SpecialHandling string  `json:"special_handling,omitempty"`
}

func (s *ShippingService) Destinations(ctx context.Context) (*types.Paginated[types.ShippingDestination], error) {
	var out types.Paginated[types.ShippingDestination]
	if err := s.client.Do(ctx, http.MethodGet, "/shipping/destinations/", "shipping", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalculateQuote is a single backend call; all rate logic lives server-side.
func (s *ShippingService) CalculateQuote(ctx context.Context, req QuoteRequest) (*types.ShippingQuote, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var out types.ShippingQuote
	if err := s.client.Do(ctx, http.MethodPost, "/shipping/orders/calculate_quote/", "shipping", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ShippingService) CreateOrder(ctx context.Context, req CreateShippingOrderRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, "/shipping/orders/", "shipping", req, nil)
}

func (s *ShippingService) Tracking(ctx context.Context, id int) (*types.ShippingTracking, error) {
	var out types.ShippingTracking
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/shipping/orders/%d/tracking/", id), "shipping", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
