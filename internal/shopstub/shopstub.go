// Package shopstub is an in-process fake of the remote shop API, faithful
// to the real backend's observable behaviour: registration with an emailed
// OTP (exposed to tests instead of mailed), bcrypt-checked logins, HS256
// bearer tokens, a seeded catalogue, stock-checked orders, and the
// rule-based support bot. The test suite and `bazaar demo` run the client
// against it; it is a fixture, not a product.
package shopstub

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/collection"
)

const otpTTL = 5 * time.Minute

type user struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

type pendingUser struct {
	Name         string
	Email        string
	PasswordHash []byte
	OTP          string
	ExpiresAt    time.Time
}

type product struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type orderItem struct {
	ProductID string  `json:"product_id"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

type order struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	Items     []orderItem `json:"items"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"created_at"`
}

// Server holds the fake backend's state. Everything lives in memory and
// dies with the process.
type Server struct {
	mu       sync.Mutex
	users    map[string]*user        // keyed by email
	pending  map[string]*pendingUser // keyed by otp exchange token
	products []product
	orders   []order
	secret   []byte

	// now is swappable so tests can age pending OTPs past their TTL.
	now func() time.Time
}

func New() *Server {
	return &Server{
		users:    make(map[string]*user),
		pending:  make(map[string]*pendingUser),
		products: seedProducts(),
		secret:   []byte(config.JWTSecret()),
		now:      time.Now,
	}
}

func seedProducts() []product {
	return []product{
		{ProductID: "p1", Name: "Running Shoes", Price: 49.99, Stock: 10},
		{ProductID: "p2", Name: "Wireless Headphones", Price: 69.99, Stock: 8},
		{ProductID: "p3", Name: "Smart Watch", Price: 129.99, Stock: 5},
		{ProductID: "p4", Name: "Backpack", Price: 39.99, Stock: 12},
		{ProductID: "p5", Name: "Sunglasses", Price: 19.99, Stock: 20},
	}
}

// Handler returns the stub's route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/register", s.handleRegister)
	r.Post("/api/verify_otp", s.handleVerifyOTP)
	r.Post("/api/login", s.handleLogin)
	r.Get("/api/products", s.handleProducts)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Get("/api/profile", s.handleProfile)
		r.Post("/api/order", s.handleOrder)
		r.Get("/api/order/{orderID}", s.handleOrderByID)
		r.Post("/api/chat", s.handleChat)
	})

	return r
}

// SetNow replaces the stub's clock. Tests use it to age pending OTPs
// past their TTL.
func (s *Server) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// OTPFor exposes the code the real backend would have emailed. Tests and
// the demo shell read it here.
func (s *Server) OTPFor(otpToken string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pending[otpToken]
	if !ok {
		return "", false
	}
	return entry.OTP, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" || in.Password == "" || in.Confirm == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if in.Password != in.Confirm {
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token := uuid.NewString()
	s.pending[token] = &pendingUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		OTP:          newOTP(),
		ExpiresAt:    s.now().Add(otpTTL),
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "OTP sent successfully",
		"otp_token": token,
	})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OTP      string `json:"otp"`
		OTPToken string `json:"otp_token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pending[in.OTPToken]
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}
	if s.now().After(entry.ExpiresAt) {
		delete(s.pending, in.OTPToken)
		writeError(w, http.StatusBadRequest, "OTP expired")
		return
	}
	if entry.OTP != in.OTP {
		writeError(w, http.StatusBadRequest, "Incorrect OTP")
		return
	}

	s.users[entry.Email] = &user{
		UserID:       uuid.NewString(),
		Name:         entry.Name,
		Email:        entry.Email,
		PasswordHash: entry.PasswordHash,
		CreatedAt:    s.now().UTC(),
	}
	delete(s.pending, in.OTPToken)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "OTP verified successfully, registration complete",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	email := strings.ToLower(strings.TrimSpace(in.Email))

	s.mu.Lock()
	u, ok := s.users[email]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.mintToken(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	list := make([]product, len(s.products))
	copy(list, s.products)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[claims.Email]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	mine := []order{}
	for _, o := range s.orders {
		if o.UserID == u.UserID {
			mine = append(mine, o)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile": map[string]string{
			"user_id":    u.UserID,
			"name":       u.Name,
			"email":      u.Email,
			"created_at": u.CreatedAt.Format(time.RFC3339),
		},
		"orders": mine,
	})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var in struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ProductID == in.ProductID {
			idx = i
			break
		}
	}
	if idx < 0 {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if s.products[idx].Stock < in.Quantity {
		writeError(w, http.StatusBadRequest, "Not enough stock")
		return
	}

	orderID := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	s.orders = append(s.orders, order{
		OrderID:   orderID,
		UserID:    claims.UserID,
		Items:     []orderItem{{ProductID: in.ProductID, Qty: in.Quantity, Price: s.products[idx].Price}},
		Status:    "processing",
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	})
	s.products[idx].Stock -= in.Quantity

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Order placed successfully",
		"order_id": orderID,
	})
}

func (s *Server) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	orderID := chi.URLParam(r, "orderID")

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := collection.First(s.orders, func(o order) bool { return o.OrderID == orderID })
	if !ok {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if o.UserID != claims.UserID {
		writeError(w, http.StatusForbidden, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// newOTP derives a 6-digit code the way the real backend does: the leading
// digits of a random UUID's integer form.
func newOTP() string {
	id := uuid.New()
	digits := make([]byte, 0, 6)
	for _, b := range id {
		for _, c := range []byte{b / 100, b / 10 % 10, b % 10} {
			digits = append(digits, '0'+c)
			if len(digits) == 6 {
				return string(digits)
			}
		}
	}
	return string(digits)
}
