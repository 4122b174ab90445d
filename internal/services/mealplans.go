package services

import (
	"context"
	"net/http"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

type MealPlanService struct {
	client *api.Client
}

type SubscribePlanRequest struct {
	PlanID    int    `json:"plan_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	Notes     string `json:"notes,omitempty"`
}

func (s *MealPlanService) Plans(ctx context.Context) (*types.Paginated[types.MealPlan], error) {
	var out types.Paginated[types.MealPlan]
	if err := s.client.Do(ctx, http.MethodGet, "/mealplans/plans/", "mealplans", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MealPlanService) Subscribe(ctx context.Context, req SubscribePlanRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPost, "/mealplans/subscriptions/", "mealplans", req, nil)
}
