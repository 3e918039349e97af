// Package location is the geolocation boundary. Positions enrich prompts
// but are never required for correctness.
package location

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnavailable      = errors.New("position unavailable")
	ErrTimeout          = errors.New("location timeout")
)

type Position struct {
	Latitude  float64
	Longitude float64
}

func (p Position) String() string {
	return fmt.Sprintf("%.4f, %.4f", p.Latitude, p.Longitude)
}

type Provider interface {
	Locate(ctx context.Context) (*Position, error)
}

// Static returns a fixed position, for configuration and tests.
type Static struct {
	Position Position
}

func (s Static) Locate(ctx context.Context) (*Position, error) {
	p := s.Position
	return &p, nil
}
