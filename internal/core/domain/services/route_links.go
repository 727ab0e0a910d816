package services

import (
	"net/url"
	"strings"

	"montarota/internal/core/domain/model/route"
)

const (
	googleMapsDirBaseURL = "https://www.google.com/maps/dir/"
	wazeBaseURL          = "https://waze.com/ul"

	// DefaultOrigin is the placeholder origin segment when no store address is given.
	DefaultOrigin = "origin"
)

// RouteLinkBuilder builds the Google Maps multi-stop link and the Waze link to the
// first stop. Stops are kept in the given order.
//
// Example:
//
//	links := services.NewRouteLinkBuilder().Build("Rua da Loja, 1", []string{"Rua A, 123", "Rua B, 45"})
//	// links.GoogleMaps == "https://www.google.com/maps/dir/Rua%20da%20Loja%2C%201/Rua%20A%2C%20123/Rua%20B%2C%2045"
//	// links.Waze       == "https://waze.com/ul?q=Rua%20A%2C%20123&navigate=yes"
type RouteLinkBuilder struct{}

func NewRouteLinkBuilder() RouteLinkBuilder {
	return RouteLinkBuilder{}
}

// Build returns empty links when there are no stops.
func (RouteLinkBuilder) Build(origin string, stops []string) route.Links {
	if len(stops) == 0 {
		return route.Links{}
	}
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = DefaultOrigin
	}

	segments := make([]string, 0, len(stops)+1)
	segments = append(segments, escapeComponent(origin))
	for _, s := range stops {
		segments = append(segments, escapeComponent(s))
	}

	return route.Links{
		GoogleMaps: googleMapsDirBaseURL + strings.Join(segments, "/"),
		Waze:       wazeBaseURL + "?q=" + escapeComponent(stops[0]) + "&navigate=yes",
	}
}

// escapeComponent percent-encodes every reserved character, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
