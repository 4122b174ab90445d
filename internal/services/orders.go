package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type OrderService struct {
	client *api.Client
}

type CreateOrderRequest struct {
	OrderType       string `json:"order_type" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ShippingCity    string `json:"shipping_city" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	DeliveryDate    string `json:"delivery_date,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*types.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var out types.Order
	if err := s.client.Do(ctx, http.MethodPost, "/orders/create_order/", "orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) List(ctx context.Context) (*types.Paginated[types.Order], error) {
	var out types.Paginated[types.Order]
	if err := s.client.Do(ctx, http.MethodGet, "/orders/", "orders", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) Detail(ctx context.Context, id int) (*types.Order, error) {
	var out types.Order
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/", id), "orders", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) Tracking(ctx context.Context, id int) (*types.OrderTracking, error) {
	var out types.OrderTracking
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/tracking/", id), "orders", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
