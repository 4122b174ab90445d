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

type BlogService struct {
	client *api.Client
}

type BlogFilter struct {
	Category string
	Page     int
}

func (f BlogFilter) query() url.Values {
	params := url.Values{}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	return params
}

func (s *BlogService) Posts(ctx context.Context, filter BlogFilter) (*types.Paginated[types.BlogPost], error) {
	var out types.Paginated[types.BlogPost]
	path := withQuery("/blog/posts/", filter.query())
	if err := s.client.Do(ctx, http.MethodGet, path, "blog", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BlogService) PostDetail(ctx context.Context, slug string) (*types.BlogPost, error) {
	var out types.BlogPost
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/blog/posts/%s/", url.PathEscape(slug)), "blog", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
