package screen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/session"
	"github.com/shashiranjanraj/bazaar/pkg/collection"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

// Dashboard is the product screen: the catalogue for everyone, profile and
// order history when a bearer token is present, order placement, and an
// embedded chat panel. All of its state vanishes with the screen; nothing
// here is shared with other screens.
type Dashboard struct {
	Products []api.Product
	Profile  *api.Profile
	Orders   []api.Order
	Msg      string
	Chat     *ChatPanel

	// LastAlert holds the most recent order alert; AlertFunc, when set,
	// additionally receives each one as it happens.
	LastAlert string
	AlertFunc func(string)

	client *api.Client
	sess   *session.Session
	life   lifecycle
}

func NewDashboard(client *api.Client, sess *session.Session) *Dashboard {
	return &Dashboard{
		client: client,
		sess:   sess,
		Chat:   NewEmbeddedChatPanel(client, sess),
	}
}

// Load runs the screen's two mount-time fetches. They are independent: a
// failed catalogue fetch does not stop the profile fetch, and vice versa.
// The profile fetch is skipped silently without a token.
func (d *Dashboard) Load(ctx context.Context) {
	epoch := d.life.begin()
	d.loadProducts(ctx, epoch)
	d.loadProfile(ctx, epoch)
}

func (d *Dashboard) loadProducts(ctx context.Context, epoch int) {
	products, err := d.client.Products(ctx)
	if !d.life.current(epoch) {
		return
	}

	switch {
	case err == nil:
		d.Products = products
	case errors.Is(err, api.ErrBadPayload):
		d.Msg = "Invalid product response"
	default:
		d.Msg = "Failed to load products"
	}
}

func (d *Dashboard) loadProfile(ctx context.Context, epoch int) {
	token := d.sess.Token()
	if token == "" {
		return
	}

	resp, err := d.client.FetchProfile(ctx, token)
	if !d.life.current(epoch) {
		return
	}

	switch {
	case err != nil:
		d.Msg = "Profile fetch error"
	case resp.Profile == nil:
		d.Msg = "Failed to fetch profile"
	default:
		d.Profile = resp.Profile
		d.Orders = resp.Orders
	}
}

// PlaceOrder buys one unit of the product. Without a token it alerts and
// never touches the network. A successful placement appends a locally
// synthesized order record: status assumed "processing", quantity 1, items
// derived from the already-loaded catalogue, tagged Local because it is
// never reconciled with what the backend actually recorded.
func (d *Dashboard) PlaceOrder(ctx context.Context, productID string) {
	token := d.sess.Token()
	if token == "" {
		d.alert("Please login to place an order")
		return
	}

	epoch := d.life.begin()
	orderID, err := d.client.PlaceOrder(ctx, token, productID, 1)
	if !d.life.current(epoch) {
		return
	}

	switch {
	case err == nil:
		d.alert(fmt.Sprintf("Order placed! Order ID: %s", orderID))
		d.Orders = append(d.Orders, d.synthesizeOrder(orderID, productID))
	case api.IsServerError(err):
		if msg := api.ServerMessage(err); msg != "" {
			d.alert(msg)
		} else {
			d.alert("Failed to place order")
		}
	default:
		d.alert("Error connecting to server")
	}
}

func (d *Dashboard) synthesizeOrder(orderID, productID string) api.Order {
	matched := collection.Filter(d.Products, func(p api.Product) bool {
		return p.ProductID == productID
	})
	items := collection.Map(matched, func(p api.Product) api.OrderItem {
		return api.OrderItem{ProductID: p.ProductID, Name: p.Name, Qty: 1, Price: p.Price}
	})

	return api.Order{
		OrderID:   orderID,
		Status:    "processing",
		Items:     items,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Local:     true,
	}
}

func (d *Dashboard) alert(msg string) {
	logger.WithScreen("dashboard").Debug("alert", "message", msg)
	d.LastAlert = msg
	if d.AlertFunc != nil {
		d.AlertFunc(msg)
	}
}

// Unmount discards in-flight loads and retires the embedded chat panel.
func (d *Dashboard) Unmount() {
	d.life.retire()
	d.Chat.Unmount()
}
