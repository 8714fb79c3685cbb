package api

// Wire types for the shop API. Field names mirror the JSON the backend
// emits; everything here is a snapshot owned by the screen that fetched it.

// Product is one catalogue entry.
type Product struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

// Order is either server-origin (fetched with the profile) or synthesized
// locally right after a successful placement. Local marks the latter: its
// status is assumed "processing" and is never reconciled with the backend.
type Order struct {
	OrderID   string      `json:"order_id"`
	Status    string      `json:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt string      `json:"created_at"`

	Local bool `json:"-"`
}

// Profile is the read-only account view.
type Profile struct {
	UserID    string `json:"user_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ProfileResponse bundles the profile with the caller's order history.
// Profile stays nil when the backend answered without one (expired token,
// unknown user); the dashboard surfaces that as a fetch failure.
type ProfileResponse struct {
	Profile *Profile `json:"profile"`
	Orders  []Order  `json:"orders"`
}

// RegisterInput carries the four registration fields verbatim. The client
// performs no confirmation-match check; the backend owns all validation.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// Chat transcript roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// ChatMessage is one turn of a chat transcript. Transcripts are in-memory
// only and reset when their screen goes away.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
