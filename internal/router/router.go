// Package router holds the client-side route table: seven paths, each
// naming a screen. The root path redirects to registration. There are no
// hard guards by default: visiting an authenticated screen without a
// token just renders it degraded. Redirect-to-login can be switched on
// per configuration.
package router

import (
	"fmt"
	"sort"
)

// Guard modes accepted by Resolve.
const (
	GuardOpen     = "open"
	GuardRedirect = "redirect"
)

// Route is one entry of the table. RedirectTo, when set, makes the path a
// pure redirect. Authed marks screens that only render fully with a token;
// it is advisory under GuardOpen.
type Route struct {
	Path       string
	Name       string
	RedirectTo string
	Authed     bool
}

type Router struct {
	byPath map[string]Route
	byName map[string]string
}

// New returns the client's route table.
func New() *Router {
	r := &Router{
		byPath: make(map[string]Route),
		byName: make(map[string]string),
	}

	r.add(Route{Path: "/", RedirectTo: "/register"})
	r.add(Route{Path: "/register", Name: "auth.register"})
	r.add(Route{Path: "/verify", Name: "auth.verify"})
	r.add(Route{Path: "/login", Name: "auth.login"})
	r.add(Route{Path: "/products", Name: "shop.dashboard", Authed: true})
	r.add(Route{Path: "/chat", Name: "chat.widget"})
	r.add(Route{Path: "/profile", Name: "account.profile", Authed: true})

	return r
}

func (r *Router) add(route Route) {
	r.byPath[route.Path] = route
	if route.Name != "" {
		r.byName[route.Name] = route.Path
	}
}

// Resolve maps a requested path to the path that actually renders,
// following redirects and applying the guard mode. authed is whether a
// bearer token is present. Unknown paths are an error; the shell shows it
// and stays where it is.
func (r *Router) Resolve(path string, authed bool, guardMode string) (string, error) {
	route, ok := r.byPath[path]
	if !ok {
		return "", fmt.Errorf("router: no route for %q", path)
	}

	if route.RedirectTo != "" {
		return r.Resolve(route.RedirectTo, authed, guardMode)
	}

	if guardMode == GuardRedirect && route.Authed && !authed {
		return "/login", nil
	}

	return route.Path, nil
}

// Path returns the path registered under a route name.
func (r *Router) Path(name string) (string, bool) {
	path, ok := r.byName[name]
	return path, ok
}

// Routes lists the table sorted by path, for route listings.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.byPath))
	for _, route := range r.byPath {
		out = append(out, route)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
