// Package types holds the payload shapes served by the storefront API.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Paginated is the page envelope the API wraps list responses in.
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type SiteAsset struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	FaviconURL    *string `json:"favicon_url,omitempty"`
	LogoPrimary   *string `json:"logo_primary_url,omitempty"`
	LogoLightURL  *string `json:"logo_light_url,omitempty"`
	LogoDarkURL   *string `json:"logo_dark_url,omitempty"`
}

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UserProfile struct {
	ID                   int    `json:"id"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	City                 string `json:"city"`
	State                string `json:"state"`
	Country              string `json:"country"`
	ZipCode              string `json:"zip_code"`
	Role                 string `json:"role"`
	AvatarURL            string `json:"avatar_url,omitempty"`
	NewsletterSubscribed bool   `json:"newsletter_subscribed"`
	CreatedAt            string `json:"created_at,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User    User         `json:"user"`
	Profile *UserProfile `json:"profile,omitempty"`
	Token   string       `json:"token"`
}

type MenuCategory struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Icon         string `json:"icon,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type MenuItemImage struct {
	ID           int    `json:"id"`
	ImageURL     string `json:"image_url"`
	AltText      string `json:"alt_text"`
	DisplayOrder int    `json:"display_order"`
}

type MenuItemReview struct {
	ID                 int       `json:"id"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	Username           string    `json:"username"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	CreatedAt          time.Time `json:"created_at"`
}

type MenuItem struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	Category        *MenuCategory    `json:"category,omitempty"`
	CategoryName    string           `json:"category_name,omitempty"`
	ImageURL        string           `json:"image_url"`
	PrepTimeMinutes int              `json:"prep_time_minutes"`
	IsAvailable     bool             `json:"is_available"`
	IsFeatured      bool             `json:"is_featured"`
	AverageRating   *float64         `json:"average_rating,omitempty"`
	Images          []MenuItemImage  `json:"images,omitempty"`
	Reviews         []MenuItemReview `json:"reviews,omitempty"`
}

// CartItem is one line entry of a cart. MenuItem is a denormalized snapshot
// captured when the line was added, and PriceAtAdd freezes the unit price at
// that moment; both stay fixed even when the catalog changes afterwards.
type CartItem struct {
	ID                  int              `json:"id"`
	MenuItem            MenuItem         `json:"menu_item"`
	Quantity            int              `json:"quantity"`
	PriceAtAdd          *decimal.Decimal `json:"price_at_add"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	SpecialInstructions string           `json:"special_instructions"`
	AddedAt             time.Time        `json:"added_at"`
}

// EffectiveUnitPrice returns the frozen price-at-add, falling back to the
// live menu item price only when the snapshot price is absent.
func (ci CartItem) EffectiveUnitPrice() decimal.Decimal {
	if ci.PriceAtAdd != nil {
		return *ci.PriceAtAdd
	}
	return ci.MenuItem.Price
}

// ComputedSubtotal multiplies the effective unit price by the quantity.
func (ci CartItem) ComputedSubtotal() decimal.Decimal {
	return ci.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

type Cart struct {
	ID        int             `json:"id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID                  int             `json:"id"`
	ItemName            string          `json:"item_name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	SpecialInstructions string          `json:"special_instructions"`
}

type Order struct {
	ID               int             `json:"id"`
	OrderNumber      string          `json:"order_number"`
	OrderType        string          `json:"order_type"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"payment_status"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ShippingFee      decimal.Decimal `json:"shipping_fee"`
	Tax              decimal.Decimal `json:"tax"`
	Discount         decimal.Decimal `json:"discount"`
	Total            decimal.Decimal `json:"total"`
	ShippingCity     string          `json:"shipping_city"`
	DeliveryDate     *string         `json:"delivery_date,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	TrackingNumber   string          `json:"tracking_number,omitempty"`
	Items            []OrderItem     `json:"items,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type OrderTracking struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

type MealPlan struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	PlanType       string          `json:"plan_type"`
	Period         string          `json:"period"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	Features       []string        `json:"features"`
	IsCustomizable bool            `json:"is_customizable"`
}

type CateringPackage struct {
	ID           int             `json:"id"`
	Category     string          `json:"category"`
	Tier         string          `json:"tier"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	MinGuests    int             `json:"min_guests"`
	MaxGuests    int             `json:"max_guests"`
	PricePerHead decimal.Decimal `json:"price_per_head"`
	MenuOptions  []string        `json:"menu_options"`
	Images       []string        `json:"images"`
}

type BlogPost struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Author          string  `json:"author"`
	Category        string  `json:"category,omitempty"`
	FeaturedImage   string  `json:"featured_image"`
	Excerpt         string  `json:"excerpt"`
	Body            string  `json:"body"`
	IsPublished     bool    `json:"is_published"`
	PublishDate     *string `json:"publish_date,omitempty"`
	ViewCount       int     `json:"view_count"`
	MetaDescription string  `json:"meta_description,omitempty"`
}

type GalleryCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ImageCount int    `json:"image_count"`
}

type GalleryImage struct {
	ID           int    `json:"id"`
	Category     int    `json:"category"`
	CategoryName string `json:"category_name"`
	ImageURL     string `json:"image_url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

type TrainingPackage struct {
	ID                 int              `json:"id"`
	PackageType        string           `json:"package_type"`
	PackageTypeDisplay string           `json:"package_type_display"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	IsForBeginners     bool             `json:"is_for_beginners"`
	IsAdvanced         bool             `json:"is_advanced"`
	Features           []string         `json:"features"`
	IsActive           bool             `json:"is_active"`
	DisplayOrder       int              `json:"display_order"`
	ImageURL           string           `json:"image_url,omitempty"`
}

type ShippingDestination struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	IsActive bool   `json:"is_active"`
}

type ShippingQuote struct {
	DestinationID int             `json:"destination_id"`
	WeightKg      float64         `json:"weight_kg"`
	Quote         decimal.Decimal `json:"quote"`
	Currency      string          `json:"currency"`
}

type ShippingTracking struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

type PaymentInitialization struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code,omitempty"`
}
