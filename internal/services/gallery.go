package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type GalleryService struct {
	client *api.Client
}

func (s *GalleryService) Categories(ctx context.Context) (*types.Paginated[types.GalleryCategory], error) {
	var out types.Paginated[types.GalleryCategory]
	if err := s.client.Do(ctx, http.MethodGet, "/gallery/categories/", "gallery", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GalleryService) Images(ctx context.Context, categoryID int) (*types.Paginated[types.GalleryImage], error) {
	params := url.Values{}
	if categoryID > 0 {
		params.Set("category", strconv.Itoa(categoryID))
	}
	var out types.Paginated[types.GalleryImage]
	if err := s.client.Do(ctx, http.MethodGet, withQuery("/gallery/images/", params), "gallery", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
