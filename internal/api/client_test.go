package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/internal/api"
)

func newServer(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL)
}

func TestRegisterReturnsOTPToken(t *testing.T) {
	var gotBody map[string]string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"otp_token": "T1"})
	})

	token, err := client.Register(context.Background(), api.RegisterInput{
		Name: "A", Email: "a@x.com", Password: "p", Confirm: "p",
	})
	require.NoError(t, err)
	assert.Equal(t, "T1", token)

	// The confirmation travels to the server unchecked.
	assert.Equal(t, "p", gotBody["confirm"])
}

func TestRegisterServerError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Email already registered"})
	})

	_, err := client.Register(context.Background(), api.RegisterInput{})
	require.Error(t, err)
	assert.True(t, api.IsServerError(err))
	assert.Equal(t, "Email already registered", api.ServerMessage(err))
}

func TestLoginWrongCredentials(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	})

	_, err := client.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestServerErrorWithoutMessage(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.Login(context.Background(), "a@x.com", "p")
	require.Error(t, err)
	assert.True(t, api.IsServerError(err))
	assert.Equal(t, "", api.ServerMessage(err), "non-JSON body leaves the message empty")
}

func TestProductsArray(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"product_id": "p1", "name": "Running Shoes", "price": 49.99},
		})
	})

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ProductID)
	assert.Equal(t, 49.99, products[0].Price)
}

func TestProductsNonArrayIsBadPayload(t *testing.T) {
	for name, body := range map[string]string{
		"object": `{"error":"nope"}`,
		"string": `"hello"`,
		"number": `42`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			})

			products, err := client.Products(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, api.ErrBadPayload))
			assert.Nil(t, products)
		})
	}
}

func TestFetchProfileSendsBearer(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"profile": map[string]string{"name": "A", "email": "a@x.com", "created_at": "2024-01-01T00:00:00Z"},
			"orders":  []any{},
		})
	})

	resp, err := client.FetchProfile(context.Background(), "tok-1")
	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "A", resp.Profile.Name)
	assert.Empty(t, resp.Orders)
}

func TestFetchProfileMissingProfileField(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
	})

	resp, err := client.FetchProfile(context.Background(), "stale")
	require.NoError(t, err, "profile fetch decodes whatever came back")
	assert.Nil(t, resp.Profile)
}

func TestPlaceOrder(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "p2", in["product_id"])
		assert.Equal(t, float64(1), in["quantity"])
		json.NewEncoder(w).Encode(map[string]string{"order_id": "abc123def456"})
	})

	orderID, err := client.PlaceOrder(context.Background(), "tok", "p2", 1)
	require.NoError(t, err)
	assert.Equal(t, "abc123def456", orderID)
}

func TestChatReply(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"bot": "hello"})
	})

	reply, err := client.Chat(context.Background(), "tok", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
}

func TestChatMissingBotField(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	reply, err := client.Chat(context.Background(), "tok", "hi")
	require.NoError(t, err)
	assert.Equal(t, "", reply, "caller substitutes the No reply placeholder")
}

func TestTransportFailureIsNotServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more
	client := api.NewClient(srv.URL)

	_, err := client.Products(context.Background())
	require.Error(t, err)
	assert.False(t, api.IsServerError(err))
	assert.False(t, errors.Is(err, api.ErrBadPayload))
}
