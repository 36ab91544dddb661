// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

// Authenticator reports whether a session is active.
type Authenticator interface {
	IsAuthenticated() bool
}

// Decision is the outcome of resolving a navigation.
type Decision struct {
	// Route is the screen to show.
	Route Route
	// Redirected is true when Route differs from what was requested.
	Redirected bool
	// From is the requested path when Redirected is true.
	From string
}

// Path returns the path of the screen to show.
func (d Decision) Path() string {
	return d.Route.Path()
}

// Guard resolves navigations against the session.
type Guard struct {
	auth Authenticator
}

// NewGuard creates a guard that reads auth on every resolution.
func NewGuard(auth Authenticator) *Guard {
	return &Guard{auth: auth}
}

// Resolve decides where a navigation to path lands.
func (g *Guard) Resolve(path string) Decision {
	route, err := Parse(path)
	if err != nil {
		route = Projects()
	}
	return g.ResolveRoute(route)
}

// ResolveRoute decides where a navigation to route lands.
func (g *Guard) ResolveRoute(route Route) Decision {
	authed := g.auth != nil && g.auth.IsAuthenticated()

	switch {
	case route.Kind.Protected() && !authed:
		return Decision{Route: Login(), Redirected: true, From: route.Path()}
	case !route.Kind.Protected() && authed:
		return Decision{Route: Projects(), Redirected: true, From: route.Path()}
	default:
		return Decision{Route: route}
	}
}

// Allowed reports whether route would render without a redirect.
func (g *Guard) Allowed(route Route) bool {
	return !g.ResolveRoute(route).Redirected
}

// Protect renders the view for path when the guard allows it and otherwise
// returns the redirect target produced by redirect.
func Protect[V any](g *Guard, path string, render func(Route) V, redirect func(Decision) V) V {
	d := g.Resolve(path)
	if d.Redirected {
		return redirect(d)
	}
	return render(d.Route)
}
