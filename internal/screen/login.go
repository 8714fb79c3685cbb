package screen

import (
	"context"
	"time"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/session"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

// Login trades credentials for a bearer token and lands on the dashboard.
type Login struct {
	Form    map[string]string
	Message string

	client *api.Client
	sess   *session.Session
	nav    Navigator
	life   lifecycle
}

func NewLogin(client *api.Client, sess *session.Session, nav Navigator) *Login {
	return &Login{
		Form:   map[string]string{"email": "", "password": ""},
		client: client,
		sess:   sess,
		nav:    nav,
	}
}

func (s *Login) SetField(name, value string) {
	s.Form[name] = value
}

func (s *Login) Submit(ctx context.Context) {
	s.Message = "Checking credentials..."
	epoch := s.life.begin()

	token, err := s.client.Login(ctx, s.Form["email"], s.Form["password"])
	if !s.life.current(epoch) {
		return
	}

	switch {
	case err == nil:
		if err := s.sess.SetToken(token); err != nil {
			logger.WithScreen("login").Warn("persist token", "error", err)
		}
		s.Message = "Login successful!"
		navigateAfter(s.nav, "/products", 1000*time.Millisecond)
	case api.IsServerError(err):
		if msg := api.ServerMessage(err); msg != "" {
			s.Message = msg
		} else {
			s.Message = "Login failed"
		}
	default:
		s.Message = "Server error"
	}
}

func (s *Login) Unmount() {
	s.life.retire()
}
