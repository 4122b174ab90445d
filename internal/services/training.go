package services

import (
	"context"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type TrainingService struct {
	client *api.Client
}

type TrainingEnquiryRequest struct {
	PackageID    int    `json:"package,omitempty"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	Message      string `json:"message,omitempty"`
	WantsToLearn bool   `json:"wants_to_learn"`
}

func (s *TrainingService) Packages(ctx context.Context) (*types.Paginated[types.TrainingPackage], error) {
	var out types.Paginated[types.TrainingPackage]
	if err := s.client.Do(ctx, http.MethodGet, "/training/packages/", "training", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TrainingService) Enquire(ctx context.Context, req TrainingEnquiryRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, "/training/enquiries/", "training", req, nil)
}
