package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/internal/router"
)

func TestRootRedirectsToRegister(t *testing.T) {
	r := router.New()

	path, err := r.Resolve("/", false, router.GuardOpen)
	require.NoError(t, err)
	assert.Equal(t, "/register", path)
}

func TestUnknownPath(t *testing.T) {
	r := router.New()

	_, err := r.Resolve("/cart", false, router.GuardOpen)
	assert.Error(t, err)
}

// Under the default open mode, authenticated screens render without a
// token; they degrade in place instead of redirecting.
func TestOpenModeDoesNotGuard(t *testing.T) {
	r := router.New()

	for _, path := range []string{"/products", "/profile"} {
		resolved, err := r.Resolve(path, false, router.GuardOpen)
		require.NoError(t, err)
		assert.Equal(t, path, resolved)
	}
}

func TestRedirectModeSendsToLogin(t *testing.T) {
	r := router.New()

	tests := []struct {
		path   string
		authed bool
		want   string
	}{
		{"/products", false, "/login"},
		{"/profile", false, "/login"},
		{"/products", true, "/products"},
		{"/profile", true, "/profile"},
		{"/register", false, "/register"}, // unauthenticated screens unaffected
		{"/chat", false, "/chat"},
	}

	for _, tt := range tests {
		resolved, err := r.Resolve(tt.path, tt.authed, router.GuardRedirect)
		require.NoError(t, err)
		assert.Equal(t, tt.want, resolved, "resolve %s authed=%v", tt.path, tt.authed)
	}
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()

	path, ok := r.Path("shop.dashboard")
	require.True(t, ok)
	assert.Equal(t, "/products", path)

	_, ok = r.Path("missing.route")
	assert.False(t, ok)

	routes := r.Routes()
	assert.Len(t, routes, 7)
	assert.Equal(t, "/", routes[0].Path, "routes are sorted by path")
}
