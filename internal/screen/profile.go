package screen

import (
	"context"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/session"
)

// ProfileView is the standalone read-only account screen: profile fields
// plus order history, fetched once. Like the dashboard it degrades rather
// than redirects when no token is present, unless the router's guard mode
// says otherwise.
type ProfileView struct {
	Profile *api.Profile
	Orders  []api.Order
	Msg     string

	client *api.Client
	sess   *session.Session
	life   lifecycle
}

func NewProfileView(client *api.Client, sess *session.Session) *ProfileView {
	return &ProfileView{client: client, sess: sess}
}

// Load fetches the profile. Without a token the screen stays empty, the
// same silent degradation the dashboard applies.
func (s *ProfileView) Load(ctx context.Context) {
	token := s.sess.Token()
	if token == "" {
		return
	}

	epoch := s.life.begin()
	resp, err := s.client.FetchProfile(ctx, token)
	if !s.life.current(epoch) {
		return
	}

	switch {
	case err != nil:
		s.Msg = "Profile fetch error"
	case resp.Profile == nil:
		s.Msg = "Failed to fetch profile"
	default:
		s.Profile = resp.Profile
		s.Orders = resp.Orders
	}
}

func (s *ProfileView) Unmount() {
	s.life.retire()
}
