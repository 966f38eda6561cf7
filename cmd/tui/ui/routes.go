package ui

import (
	"strings"

	"github.com/Varun5711/cinerate/internal/httpclient"
)

type View int

const (
	LoginView View = iota
	SignupView
	MenuView
	MoviesView
	SeriesView
	FavoritesView
	RatingsView
	DashboardView
	RatingView
)

var routes = map[View]string{
	LoginView:     httpclient.LoginRoute,
	SignupView:    "/register",
	MenuView:      "/",
	MoviesView:    "/movies",
	SeriesView:    "/series",
	FavoritesView: "/favorites",
	RatingsView:   "/ratings",
	DashboardView: "/dashboard",
}

// Route is the location reported to the HTTP core while v is showing. The
// rating dialog reports the screen it was opened from.
func Route(v View) string {
	return routes[v]
}

// ViewFor maps a route back to its screen; unknown routes land on the menu.
func ViewFor(route string) View {
	if strings.Contains(route, httpclient.LoginRoute) {
		return LoginView
	}
	for v, r := range routes {
		if r == route {
			return v
		}
	}
	return MenuView
}

// public views are reachable without a session.
func public(v View) bool {
	return v == LoginView || v == SignupView
}
