// Package testkit provides transport-level test doubles for the outgoing
// HTTP client.
//
// MockTransport intercepts requests before they reach the network and
// answers them from a table of stubbed routes, so screen tests can exercise
// server errors and connection failures without a listening server:
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("POST", "/api/login", 401, `{"error":"Invalid credentials"}`)
//	http.DefaultClient.Transport = mt
//	defer http.ResetTransport()
package testkit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// ErrConnection is returned by stubs registered with StubError, standing in
// for a dialled-but-unreachable remote.
var ErrConnection = errors.New("testkit: connection refused")

// MockTransport implements http.RoundTripper over a table of stubbed routes.
type MockTransport struct {
	mu    sync.Mutex
	stubs []stub
	calls []string // "METHOD path" per intercepted request, in order
}

type stub struct {
	method string
	path   string // matched as a suffix of the request path
	status int
	body   string
	err    error
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers a canned JSON response for method + path.
func (mt *MockTransport) Stub(method, path string, status int, body string) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, stub{method: method, path: path, status: status, body: body})
}

// StubError makes method + path fail at the transport level, as a dropped
// connection would.
func (mt *MockTransport) StubError(method, path string, err error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, stub{method: method, path: path, err: err})
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.calls = append(mt.calls, req.Method+" "+req.URL.Path)

	for _, s := range mt.stubs {
		if s.method != req.Method || !strings.HasSuffix(req.URL.Path, s.path) {
			continue
		}
		if s.err != nil {
			return nil, s.err
		}
		return buildResponse(req, s.status, s.body), nil
	}

	// No stub found: answer a generic 404 rather than hitting the network.
	return buildResponse(req, http.StatusNotFound, `{"error":"no stub configured"}`), nil
}

// Calls returns the number of intercepted requests whose path ends in path.
// An empty path counts every request.
func (mt *MockTransport) Calls(path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	n := 0
	for _, c := range mt.calls {
		if path == "" || strings.HasSuffix(c, path) {
			n++
		}
	}
	return n
}

func buildResponse(req *http.Request, status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Request:    req,
	}
}
