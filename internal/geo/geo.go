// Package geo resolves a coarse location for the current user.
package geo

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=geo.go -destination=../mocks/geo/mock_locator.go -package=mock_geo

// Location is an approximate position. City and Country are best-effort and
// may be empty.
type Location struct {
	Lat     float64
	Lng     float64
	City    string
	Country string
}

// Locator interface defines a single best-effort location lookup.
// A nil Location with a nil error means the position could not be determined.
type Locator interface {
	Locate(ctx context.Context) (*Location, error)
}

// FormatCoordinates renders a location as "lat, lng" for ledger rows, or
// "Unknown" when no location is available.
func FormatCoordinates(location *Location) string {
	if location == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%v, %v", location.Lat, location.Lng)
}
