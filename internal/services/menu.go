package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type MenuService struct {
	client *api.Client
}

// MenuItemFilter narrows the item listing; zero values are omitted.
type MenuItemFilter struct {
	Category string
	Search   string
	Featured bool
	Page     int
}

func (f MenuItemFilter) query() url.Values {
	params := url.Values{}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Featured {
		params.Set("is_featured", "true")
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	return params
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

func (s *MenuService) Categories(ctx context.Context) (*types.Paginated[types.MenuCategory], error) {
	var out types.Paginated[types.MenuCategory]
	if err := s.client.Do(ctx, http.MethodGet, "/menu/categories/", "menu", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MenuService) Items(ctx context.Context, filter MenuItemFilter) (*types.Paginated[types.MenuItem], error) {
	var out types.Paginated[types.MenuItem]
	path := withQuery("/menu/items/", filter.query())
	if err := s.client.Do(ctx, http.MethodGet, path, "menu", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MenuService) ItemDetail(ctx context.Context, id int) (*types.MenuItem, error) {
	var out types.MenuItem
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/menu/items/%d/", id), "menu", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MenuService) AddReview(ctx context.Context, menuItemID int, req AddReviewRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, fmt.Sprintf("/menu/items/%d/add_review/", menuItemID), "menu", req, nil)
}
