// Package geo is the client's boundary to a positioning capability, the
// terminal counterpart of browser geolocation. A Locator either answers
// with a position or reports that the capability is unavailable; it is
// a one-shot request either way, never retried automatically.
package geo

import (
	"context"
	"errors"
)

// ErrUnavailable means no positioning capability is configured or the
// one configured refused to answer.
var ErrUnavailable = errors.New("geo: positioning unavailable")

// Position is a point on the globe.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator answers one-shot position requests.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Fixed always answers with a configured position.
type Fixed struct {
	Position Position
}

func (f Fixed) CurrentPosition(context.Context) (Position, error) {
	return f.Position, nil
}

// Unavailable always refuses, the equivalent of a denied permission
// prompt.
type Unavailable struct{}

func (Unavailable) CurrentPosition(context.Context) (Position, error) {
	return Position{}, ErrUnavailable
}

// FromCoordinates builds a Locator from optional configured
// coordinates: Fixed when both are present, Unavailable otherwise.
func FromCoordinates(latitude, longitude *float64) Locator {
	if latitude != nil && longitude != nil {
		return Fixed{Position{Latitude: *latitude, Longitude: *longitude}}
	}
	return Unavailable{}
}
