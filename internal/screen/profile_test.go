package screen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/internal/screen"
)

func TestProfileViewSkipsSilentlyWithoutToken(t *testing.T) {
	var calls atomic.Int32
	client, sess := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	s := screen.NewProfileView(client, sess)
	s.Load(context.Background())

	assert.Nil(t, s.Profile)
	assert.Equal(t, "", s.Msg)
	assert.Equal(t, int32(0), calls.Load())
}

func TestProfileViewLoads(t *testing.T) {
	client, sess := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"profile": map[string]string{"name": "A", "email": "a@x.com", "created_at": "2024-01-01T00:00:00Z"},
			"orders": []map[string]any{
				{"order_id": "o1", "status": "delivered", "items": []any{}, "created_at": "2024-02-01T00:00:00Z"},
			},
		})
	})
	require.NoError(t, sess.SetToken("tok"))

	s := screen.NewProfileView(client, sess)
	s.Load(context.Background())

	require.NotNil(t, s.Profile)
	assert.Equal(t, "a@x.com", s.Profile.Email)
	assert.Len(t, s.Orders, 1)
}

func TestProfileViewBadToken(t *testing.T) {
	client, sess := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
	})
	require.NoError(t, sess.SetToken("stale"))

	s := screen.NewProfileView(client, sess)
	s.Load(context.Background())

	assert.Nil(t, s.Profile)
	assert.Equal(t, "Failed to fetch profile", s.Msg)
}
