package services

import (
	"context"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type PaymentService struct {
	client *api.Client
}

type InitializePaymentRequest struct {
	OrderID int    `json:"order_id" validate:"required,gt=0"`
	Email   string `json:"email" validate:"required,email"`
}

// Initialize starts a hosted payment flow for an order and returns the
// redirect target.
func (s *PaymentService) Initialize(ctx context.Context, req InitializePaymentRequest) (*types.PaymentInitialization, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var out types.PaymentInitialization
	if err := s.client.Do(ctx, http.MethodPost, "/payments/initialize/", "payments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
