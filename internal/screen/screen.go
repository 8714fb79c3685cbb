// Package screen holds the client's screen controllers: registration, OTP
// verification, login, the product dashboard, the chat panel, and the
// profile view. Each controller owns its form and list state for exactly
// as long as it is mounted; only the injected *session.Session outlives a
// screen. Control flow is linear everywhere: input, network call, state
// update from the response, optional navigation.
package screen

import (
	"sync"
	"time"

	"github.com/shashiranjanraj/bazaar/config"
)

// Navigator receives route changes requested by screens.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// lifecycle hands out monotonically increasing epochs so a screen can
// discard the result of an operation it no longer cares about. A screen
// bumps its epoch when it unmounts or re-submits; a completion whose epoch
// is stale writes nothing.
type lifecycle struct {
	mu    sync.Mutex
	epoch int
}

// begin starts a new operation and returns its epoch.
func (l *lifecycle) begin() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
	return l.epoch
}

// current reports whether epoch is still the live operation.
func (l *lifecycle) current(epoch int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.epoch == epoch
}

// retire invalidates every in-flight operation. Called on unmount.
func (l *lifecycle) retire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
}

// navigateAfter waits out the screen's fixed post-success delay and then
// changes route. Each screen has its own fixed delay, scaled by config
// so tests can run without sleeping.
func navigateAfter(nav Navigator, path string, delay time.Duration) {
	if nav == nil {
		return
	}
	if d := config.NavDelay(delay); d > 0 {
		time.Sleep(d)
	}
	nav.Navigate(path)
}
