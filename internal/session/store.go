// Package session holds the two durable credentials the client carries
// between runs: the bearer token issued at login and the OTP exchange token
// issued at registration. Credentials are written on successful
// register/login, read by every authenticated call, and never expired or
// refreshed client-side.
//
// Screens receive a *Session explicitly instead of reading ambient global
// state, so tests can hand each screen its own isolated store.
package session

import "sync"

// Storage keys, matching the field names the server issues.
const (
	keyToken    = "token"
	keyOTPToken = "otp_token"
)

// Store is a durable string key-value store. Reading an absent key yields
// ""; callers treat an empty value as "not authenticated".
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemStore is an in-memory Store for tests and the demo shell.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
