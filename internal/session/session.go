package session

// Session exposes typed accessors over a Store. Read errors are swallowed:
// a store that cannot be read reports the caller as unauthenticated, which
// is exactly how the screens treat an absent key.
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the bearer token, or "" when not logged in.
func (s *Session) Token() string {
	v, _ := s.store.Get(keyToken)
	return v
}

// OTPToken returns the pending OTP exchange token, or "".
func (s *Session) OTPToken() string {
	v, _ := s.store.Get(keyOTPToken)
	return v
}

func (s *Session) SetToken(value string) error {
	return s.store.Set(keyToken, value)
}

func (s *Session) SetOTPToken(value string) error {
	return s.store.Set(keyOTPToken, value)
}

// Clear wipes both credentials. No screen calls this; only the logout
// command does.
func (s *Session) Clear() error {
	if err := s.store.Set(keyToken, ""); err != nil {
		return err
	}
	return s.store.Set(keyOTPToken, "")
}
