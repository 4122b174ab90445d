package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type CateringService struct {
	client *api.Client
}

type CateringEnquiryRequest struct {
	PackageID int    `json:"package_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (s *CateringService) Packages(ctx context.Context, tier string) (*types.Paginated[types.CateringPackage], error) {
	params := url.Values{}
	if tier != "" {
		params.Set("tier", tier)
	}
	var out types.Paginated[types.CateringPackage]
	if err := s.client.Do(ctx, http.MethodGet, withQuery("/catering/packages/", params), "catering", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CateringService) PackageDetail(ctx context.Context, id int) (*types.CateringPackage, error) {
	var out types.CateringPackage
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/catering/packages/%d/", id), "catering", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CateringService) Enquire(ctx context.Context, req CateringEnquiryRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, "/catering/enquiries/", "catering", req, nil)
}
