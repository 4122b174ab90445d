package services

import (
	"context"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

// AuthService covers registration, login and the current-user lookup.
type AuthService struct {
	client *api.Client
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CurrentUserResponse is the /auth/me/ payload.
type CurrentUserResponse struct {
	User    types.User         `json:"user"`
	Profile *types.UserProfile `json:"profile,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*types.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var out types.AuthResponse
	if err := s.client.Do(ctx, http.MethodPost, "/auth/register/", "auth", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*types.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var out types.AuthResponse
	if err := s.client.Do(ctx, http.MethodPost, "/auth/login/", "auth", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the credential server-side. Clearing local session
// state is the session store's responsibility, not this call's.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Do(ctx, http.MethodPost, "/auth/logout/", "auth", nil, nil)
}

func (s *AuthService) CurrentUser(ctx context.Context) (*CurrentUserResponse, error) {
	var out CurrentUserResponse
	if err := s.client.Do(ctx, http.MethodGet, "/auth/me/", "auth", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
