package query

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/wellfinder/internal/domain"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
)

func TestNew(t *testing.T) {
	q, err := New(39.3722, -104.8561, "Castle Rock", DefaultCount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Lat() != 39.3722 || q.Lon() != -104.8561 {
		t.Errorf("coords = (%f, %f)", q.Lat(), q.Lon())
	}
	if q.Count() != 10 {
		t.Errorf("Count() = %d, want 10", q.Count())
	}
	want := well.Target{Lat: 39.3722, Lon: -104.8561, Name: "Castle Rock"}
	if q.Target() != want {
		t.Errorf("Target() = %+v, want %+v", q.Target(), want)
	}
}

func TestNew_ZeroCount(t *testing.T) {
	q, err := New(0, 0, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Count() != 0 {
		t.Errorf("Count() = %d, want 0", q.Count())
	}
}

func TestNew_OutOfRangeAccepted(t *testing.T) {
	if _, err := New(120, 400, "", 1); err != nil {
		t.Fatalf("coordinates are not range-checked, got %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		count    int
	}{
		{"negative count", 0, 0, -1},
		{"nan lat", math.NaN(), 0, 1},
		{"inf lon", 0, math.Inf(-1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.lat, tt.lon, "", tt.count)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Fatalf("want ErrInvalidQuery, got %v", err)
			}
		})
	}
}
