package screen

import (
	"context"
	"time"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/session"
)

// Verify submits the emailed code together with the exchange token stored
// at registration. Without a stored token it refuses to call out at all.
type Verify struct {
	OTP     string
	Message string

	client *api.Client
	sess   *session.Session
	nav    Navigator
	life   lifecycle
}

func NewVerify(client *api.Client, sess *session.Session, nav Navigator) *Verify {
	return &Verify{client: client, sess: sess, nav: nav}
}

func (s *Verify) SetOTP(code string) {
	s.OTP = code
}

// Submit verifies the code. A missing exchange token short-circuits before
// any network call.
func (s *Verify) Submit(ctx context.Context) {
	otpToken := s.sess.OTPToken()
	if otpToken == "" {
		s.Message = "Missing OTP token."
		return
	}

	epoch := s.life.begin()
	err := s.client.VerifyOTP(ctx, s.OTP, otpToken)
	if !s.life.current(epoch) {
		return
	}

	switch {
	case err == nil:
		s.Message = "OTP Verified! Redirecting..."
		navigateAfter(s.nav, "/login", 1500*time.Millisecond)
	case api.IsServerError(err):
		if msg := api.ServerMessage(err); msg != "" {
			s.Message = msg
		} else {
			s.Message = "Verification failed"
		}
	default:
		s.Message = "Server error"
	}
}

func (s *Verify) Unmount() {
	s.life.retire()
}
