package nearest

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/wellfinder/internal/domain/geo"
	"github.com/kailas-cloud/wellfinder/internal/domain/query"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
)

// DistancePlaces is the precision distance_miles is rounded to.
const DistancePlaces = 2

// Service answers nearest-neighbor queries with a linear scan.
type Service struct{}

// New creates a nearest-neighbor service.
func New() *Service {
	return &Service{}
}

// Nearest returns the n wells closest to (lat, lon), each a copy of the
// input record carrying its rounded distance. Equal rounded distances keep
// their input order. n <= 0 yields an empty result; n past the end yields all.
func (s *Service) Nearest(lat, lon float64, wells []well.Record, n int) []well.Distanced {
	if n <= 0 || len(wells) == 0 {
		return []well.Distanced{}
	}

	out := make([]well.Distanced, len(wells))
	for i, w := range wells {
		d := geo.DistanceMiles(lat, lon, w.Lat, w.Lon)
		out[i] = well.Distanced{Record: w, DistanceMiles: geo.RoundTo(d, DistancePlaces)}
	}

	slices.SortStableFunc(out, func(a, b well.Distanced) int {
		return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
	})

	if n < len(out) {
		out = out[:n:n]
	}
	return out
}

// Query answers q and wraps the result with its target descriptor.
func (s *Service) Query(q query.Nearest, wells []well.Record) well.QueryResult {
	return well.QueryResult{
		Target:       q.Target(),
		NearestWells: s.Nearest(q.Lat(), q.Lon(), wells, q.Count()),
	}
}

// Report answers q and summarizes the selected wells.
func (s *Service) Report(q query.Nearest, wells []well.Record) well.Report {
	return well.NewReport(s.Query(q, wells))
}
