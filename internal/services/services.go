// Package services maps domain operations to storefront API calls. Each
// function performs exactly one HTTP request; there are no retries, caches,
// or business rules here.
package services

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heddiekitchen/storefront-client/internal/api"
	pkgerrors "github.com/heddiekitchen/storefront-client/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// Services bundles one client-bound service per API resource group.
type Services struct {
	Auth      *AuthService
	Core      *CoreService
	Menu      *MenuService
	Cart      *CartService
	Orders    *OrderService
	Blog      *BlogService
	MealPlans *MealPlanService
	Catering  *CateringService
	Shipping  *ShippingService
	Gallery   *GalleryService
	Training  *TrainingService
	Payments  *PaymentService
}

// New wires every resource group onto the shared API client.
func New(client *api.Client) *Services {
	return &Services{
		Auth:      &AuthService{client: client},
		Core:      &CoreService{client: client},
		Menu:      &MenuService{client: client},
		Cart:      &CartService{client: client},
		Orders:    &OrderService{client: client},
		Blog:      &BlogService{client: client},
		MealPlans: &MealPlanService{client: client},
		Catering:  &CateringService{client: client},
		Shipping:  &ShippingService{client: client},
		Gallery:   &GalleryService{client: client},
		Training:  &TrainingService{client: client},
		Payments:  &PaymentService{client: client},
	}
}
