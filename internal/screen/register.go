package screen

import (
	"context"
	"time"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/session"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

// Register collects name, email, password and confirmation and trades them
// for an OTP exchange token. The confirmation is submitted verbatim; the
// backend is the only place the match is checked.
type Register struct {
	Form    map[string]string
	Message string

	client *api.Client
	sess   *session.Session
	nav    Navigator
	life   lifecycle
}

func NewRegister(client *api.Client, sess *session.Session, nav Navigator) *Register {
	return &Register{
		Form:   map[string]string{"name": "", "email": "", "password": "", "confirm": ""},
		client: client,
		sess:   sess,
		nav:    nav,
	}
}

// SetField records one keystroke's worth of form state.
func (s *Register) SetField(name, value string) {
	s.Form[name] = value
}

// Submit posts the form. On success the OTP exchange token is persisted
// before any navigation happens, then the screen redirects to /verify
// after its fixed delay.
func (s *Register) Submit(ctx context.Context) {
	s.Message = "Processing..."
	epoch := s.life.begin()

	in := api.RegisterInput{
		Name:     s.Form["name"],
		Email:    s.Form["email"],
		Password: s.Form["password"],
		Confirm:  s.Form["confirm"],
	}

	otpToken, err := s.client.Register(ctx, in)
	if !s.life.current(epoch) {
		return
	}

	switch {
	case err == nil:
		if err := s.sess.SetOTPToken(otpToken); err != nil {
			logger.WithScreen("register").Warn("persist otp token", "error", err)
		}
		s.Message = "OTP sent! Redirecting..."
		navigateAfter(s.nav, "/verify", 1200*time.Millisecond)
	case api.IsServerError(err):
		if msg := api.ServerMessage(err); msg != "" {
			s.Message = msg
		} else {
			s.Message = "Error registering"
		}
	default:
		s.Message = "Server error"
	}
}

// Unmount discards any response still in flight.
func (s *Register) Unmount() {
	s.life.retire()
}
