// Package api is the typed client for the remote shop API. Each method
// maps to one endpoint, decodes only the fields the screens consume, and
// classifies failures per the client's error taxonomy: *Error for
// server-reported problems, ErrBadPayload for shape violations, and plain
// errors for transport trouble. No call is ever retried.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/http"
)

// Client issues requests against a fixed base URL.
type Client struct {
	base    string
	timeout time.Duration
}

// NewClient returns a Client for the given base URL (no trailing slash).
func NewClient(base string) *Client {
	return &Client{base: base, timeout: config.HTTPTimeout()}
}

// Register submits the registration form and returns the OTP exchange
// token on success.
func (c *Client) Register(ctx context.Context, in RegisterInput) (string, error) {
	resp, err := c.post(ctx, "/api/register", in, "")
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", serverError(resp)
	}

	var out struct {
		OTPToken string `json:"otp_token"`
	}
	if err := resp.JSON(&out); err != nil {
		return "", err
	}
	return out.OTPToken, nil
}

// VerifyOTP exchanges the code plus the stored token; only the status
// matters, the success body is discarded.
func (c *Client) VerifyOTP(ctx context.Context, otp, otpToken string) error {
	body := map[string]string{"otp": otp, "otp_token": otpToken}
	resp, err := c.post(ctx, "/api/verify_otp", body, "")
	if err != nil {
		return err
	}
	if !resp.OK() {
		return serverError(resp)
	}
	return nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.post(ctx, "/api/login", body, "")
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", serverError(resp)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := resp.JSON(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Products fetches the catalogue. The endpoint must answer a JSON array;
// any other shape is ErrBadPayload and the caller keeps an empty list.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	resp, err := http.Get(c.base+"/api/products").
		WithContext(ctx).
		Timeout(c.timeout).
		Send()
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := resp.JSON(&raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrBadPayload
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return products, nil
}

// FetchProfile retrieves the profile plus order history. The Profile field
// of the result stays nil when the backend answered without one; the
// caller decides how to present that.
func (c *Client) FetchProfile(ctx context.Context, token string) (*ProfileResponse, error) {
	resp, err := http.Get(c.base+"/api/profile").
		WithContext(ctx).
		Bearer(token).
		Timeout(c.timeout).
		Send()
	if err != nil {
		return nil, err
	}

	var out ProfileResponse
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceOrder buys qty units of a product and returns the server's order id.
func (c *Client) PlaceOrder(ctx context.Context, token, productID string, qty int) (string, error) {
	body := map[string]any{"product_id": productID, "quantity": qty}
	resp, err := c.post(ctx, "/api/order", body, token)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", serverError(resp)
	}

	var out struct {
		OrderID string `json:"order_id"`
	}
	if err := resp.JSON(&out); err != nil {
		return "", err
	}
	return out.OrderID, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, token, orderID string) (*Order, error) {
	resp, err := http.Get(c.base+"/api/order/"+orderID).
		WithContext(ctx).
		Bearer(token).
		Timeout(c.timeout).
		Send()
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, serverError(resp)
	}

	var out Order
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends one message to the assistant and returns its reply. The reply
// field is read regardless of status, so a missing field comes back as ""
// and the panel substitutes its "No reply" placeholder.
func (c *Client) Chat(ctx context.Context, token, message string) (string, error) {
	resp, err := c.post(ctx, "/api/chat", map[string]string{"message": message}, token)
	if err != nil {
		return "", err
	}

	var out struct {
		Bot string `json:"bot"`
	}
	if err := resp.JSON(&out); err != nil {
		return "", err
	}
	return out.Bot, nil
}

func (c *Client) post(ctx context.Context, path string, body any, token string) (*http.Response, error) {
	req := http.Post(c.base + path).
		WithContext(ctx).
		Body(body).
		Timeout(c.timeout)
	if token != "" {
		req = req.Bearer(token)
	}
	return req.Send()
}

// serverError turns a non-2xx response into an *Error, pulling the
// server's "error" field out of the body when there is one.
func serverError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = resp.JSON(&body) // non-JSON bodies leave Message empty

	return &Error{Status: resp.StatusCode, Message: body.Error}
}
