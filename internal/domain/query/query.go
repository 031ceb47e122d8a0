package query

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/wellfinder/internal/domain"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
)

// DefaultCount is the number of wells returned when a query does not say.
const DefaultCount = 10

// Nearest is a validated nearest-neighbor query.
type Nearest struct {
	lat   float64
	lon   float64
	name  string
	count int
}

// New validates a query. Coordinates must be finite; they are not range-checked.
// A count of zero is valid and selects nothing.
func New(lat, lon float64, name string, count int) (Nearest, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Nearest{}, fmt.Errorf("%w: coordinates must be finite", domain.ErrInvalidQuery)
	}
	if count < 0 {
		return Nearest{}, fmt.Errorf("%w: count must be >= 0, got %d", domain.ErrInvalidQuery, count)
	}
	return Nearest{lat: lat, lon: lon, name: name, count: count}, nil
}

// Lat returns the target latitude in degrees.
func (q Nearest) Lat() float64 { return q.lat }

// Lon returns the target longitude in degrees.
func (q Nearest) Lon() float64 { return q.lon }

// Name returns the optional target label.
func (q Nearest) Name() string { return q.name }

// Count returns the requested number of wells.
func (q Nearest) Count() int { return q.count }

// Target returns the descriptor persisted alongside results.
func (q Nearest) Target() well.Target {
	return well.Target{Lat: q.lat, Lon: q.lon, Name: q.name}
}
