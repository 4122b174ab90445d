// Package apitest runs an in-process storefront API for integration-style
// tests. It implements just enough of the real contract for the client to
// exercise auth, menu and cart flows end to end, and lets tests script
// failures for everything else.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/heddiekitchen/storefront-client/pkg/types"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Server is the fake storefront API. Credentials are HS256 tokens minted at
// login and presented back with the Token scheme, mirroring the real API.
type Server struct {
	*httptest.Server

	secret []byte

	mu       sync.Mutex
	users    map[string]types.User
	carts    map[string]*types.Cart
	nextID   int
	failures []scriptedFailure
}

type scriptedFailure struct {
	method string
	path   string
	status int
	body   string
}

// NewServer starts the fake API with an empty user table and a small menu.
// Callers own shutdown via Close.
func NewServer() *Server {
	s := &Server{
		secret: []byte("apitest-signing-secret"),
		users:  map[string]types.User{},
		carts:  map[string]*types.Cart{},
		nextID: 100,
	}

	r := chi.NewRouter()
	r.Use(s.scriptedFailureMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register/", s.handleRegister)
		r.Post("/login/", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/logout/", s.handleLogout)
			r.Get("/me/", s.handleMe)
		})
	})

	r.Get("/menu/items/", s.handleMenuItems)

	r.Route("/orders/cart", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/list_cart/", s.handleListCart)
		r.Post("/add_item/", s.handleAddItem)
		r.Put("/update_item/", s.handleUpdateItem)
		r.Delete("/remove_item/", s.handleRemoveItem)
		r.Post("/clear_cart/", s.handleClearCart)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// FailNext scripts a one-shot failure for the given method and path. The next
// matching request is answered with the status and raw JSON body instead of
// reaching a handler.
func (s *Server) FailNext(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, scriptedFailure{method: method, path: path, status: status, body: body})
}

// SeedUser registers a user directly and returns a valid credential for it,
// skipping the register endpoint.
func (s *Server) SeedUser(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.users[username] = types.User{ID: s.nextID, Username: username, Email: username + "@example.com"}
	return s.mintToken(username)
}

func (s *Server) scriptedFailureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		for i, f := range s.failures {
			if f.method == r.Method && f.path == r.URL.Path {
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
				s.mu.Unlock()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(f.status)
				_, _ = w.Write([]byte(f.body))
				return
			}
		}
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Token ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		username, err := s.verifyToken(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
			return
		}
		r.Header.Set("X-Test-Username", username)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) mintToken(username string) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString(s.secret)
	if err != nil {
		panic("apitest: signing token: " + err.Error())
	}
	return signed
}

func (s *Server) verifyToken(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
	)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "username is required"})
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Username]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"message": "username already taken"})
		return
	}
	s.nextID++
	user := types.User{ID: s.nextID, Username: req.Username, Email: req.Email}
	s.users[req.Username] = user
	token := s.mintToken(req.Username)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, types.AuthResponse{User: user, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	user, ok := s.users[req.Username]
	if !ok {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}
	token := s.mintToken(req.Username)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, types.AuthResponse{User: user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user := s.users[r.Header.Get("X-Test-Username")]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleMenuItems(w http.ResponseWriter, r *http.Request) {
	items := []types.MenuItem{
		{ID: 1, Name: "Jollof Rice", Slug: "jollof-rice", Price: decimal.NewFromFloat(14.00), IsAvailable: true},
		{ID: 2, Name: "Egusi Soup", Slug: "egusi-soup", Price: decimal.NewFromFloat(16.50), IsAvailable: true},
	}
	writeJSON(w, http.StatusOK, types.Paginated[types.MenuItem]{Count: len(items), Results: items})
}

func (s *Server) handleListCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cart, ok := s.carts[r.Header.Get("X-Test-Username")]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuItemID int `json:"menu_item_id"`
		Quantity   int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "quantity must be positive"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	username := r.Header.Get("X-Test-Username")
	cart := s.carts[username]
	if cart == nil {
		s.nextID++
		cart = &types.Cart{ID: s.nextID}
		s.carts[username] = cart
	}

	for i := range cart.Items {
		if cart.Items[i].MenuItem.ID == req.MenuItemID {
			cart.Items[i].Quantity += req.Quantity
			s.recalculate(cart)
			writeJSON(w, http.StatusOK, map[string]string{"message": "item added"})
			return
		}
	}

	price := decimal.NewFromFloat(14.00)
	s.nextID++
	cart.Items = append(cart.Items, types.CartItem{
		ID:         s.nextID,
		MenuItem:   types.MenuItem{ID: req.MenuItemID, Name: "Jollof Rice", Price: price},
		Quantity:   req.Quantity,
		PriceAtAdd: &price,
		AddedAt:    time.Now().UTC(),
	})
	s.recalculate(cart)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "item added"})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartItemID int `json:"cart_item_id"`
		Quantity   int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.carts[r.Header.Get("X-Test-Username")]
	if cart == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	for i := range cart.Items {
		if cart.Items[i].ID == req.CartItemID {
			if req.Quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = req.Quantity
			}
			s.recalculate(cart)
			writeJSON(w, http.StatusOK, map[string]string{"message": "item updated"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartItemID int `json:"cart_item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.carts[r.Header.Get("X-Test-Username")]
	if cart == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	for i := range cart.Items {
		if cart.Items[i].ID == req.CartItemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			s.recalculate(cart)
			writeJSON(w, http.StatusOK, map[string]string{"message": "item removed"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.carts, r.Header.Get("X-Test-Username"))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

func (s *Server) recalculate(cart *types.Cart) {
	total := decimal.Zero
	count := 0
	for i := range cart.Items {
		item := &cart.Items[i]
		item.Subtotal = item.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.Subtotal)
		count += item.Quantity
	}
	cart.Total = total
	cart.ItemCount = count
	cart.UpdatedAt = time.Now().UTC()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
