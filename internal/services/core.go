package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

// CoreService covers site assets, newsletter, contact and profile updates.
type CoreService struct {
	client *api.Client
}

type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" validate:"required"`
}

type UpdateProfileRequest struct {
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (s *CoreService) SiteAssets(ctx context.Context) (*types.Paginated[types.SiteAsset], error) {
	var out types.Paginated[types.SiteAsset]
	if err := s.client.Do(ctx, http.MethodGet, "/auth/assets/", "core", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CoreService) SubscribeNewsletter(ctx context.Context, email string) error {
	req := NewsletterRequest{Email: email}
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, "/auth/newsletter/", "core", req, nil)
}

func (s *CoreService) SubmitContact(ctx context.Context, req ContactRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, "/auth/contact/", "core", req, nil)
}

// Profile fetches the authenticated user's profile.
func (s *CoreService) Profile(ctx context.Context) (*types.UserProfile, error) {
	var out types.UserProfile
	if err := s.client.Do(ctx, http.MethodGet, "/auth/profile/", "core", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the profile and returns the fresh snapshot the
// session store should persist alongside the existing token.
func (s *CoreService) UpdateProfile(ctx context.Context, profileID int, req UpdateProfileRequest) (*types.UserProfile, error) {
	var out types.UserProfile
	if err := s.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/auth/profile/%d/", profileID), "core", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
