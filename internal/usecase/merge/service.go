package merge

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wellfinder/internal/domain/source"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
)

// DefaultCounty is used when no target county is given.
const DefaultCounty = "DOUGLAS"

// Stats counts what happened to each source row during a merge.
// It is informational only and never changes the merged collection.
type Stats struct {
	Paired        int `json:"paired"`
	Kept          int `json:"kept"`
	DroppedParse  int `json:"dropped_parse"`
	DroppedCounty int `json:"dropped_county"`
	// IgnoredExcess is the number of rows in the longer source past the
	// end of the shorter one.
	IgnoredExcess int `json:"ignored_excess"`
}

// Dropped returns the total number of paired rows that did not produce a record.
func (s Stats) Dropped() int { return s.DroppedParse + s.DroppedCounty }

// Service joins coordinate and detail rows by position into well records.
type Service struct {
	logger *zap.Logger
}

// New creates a merge service. A nil logger disables per-row debug logging.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Merge pairs coords[i] with details[i], stopping at the shorter slice, and
// keeps the pairs whose detail County matches targetCounty case-insensitively.
// Rows whose coordinates are missing or unparseable are skipped; no error is
// ever returned. Output is in row-index order.
func (s *Service) Merge(coords, details []source.Row, targetCounty string) ([]well.Record, Stats) {
	if targetCounty == "" {
		targetCounty = DefaultCounty
	}
	want := strings.ToUpper(targetCounty)

	n := min(len(coords), len(details))
	stats := Stats{
		Paired:        n,
		IgnoredExcess: max(len(coords), len(details)) - n,
	}
	wells := make([]well.Record, 0)

	for i := 0; i < n; i++ {
		rec, err := buildRecord(i, coords[i], details[i])
		if err != nil {
			stats.DroppedParse++
			s.logger.Debug("Skipping row", zap.Int("row", i), zap.Error(err))
			continue
		}
		if strings.ToUpper(rec.County) != want {
			stats.DroppedCounty++
			continue
		}
		wells = append(wells, rec)
	}
	stats.Kept = len(wells)

	return wells, stats
}

// buildRecord converts one row pair, failing when a coordinate is missing or
// not a finite number. Detail attributes fall back to per-field defaults.
func buildRecord(id int, coord, detail source.Row) (well.Record, error) {
	lat, err := parseCoord(coord, source.ColLat)
	if err != nil {
		return well.Record{}, err
	}
	lon, err := parseCoord(coord, source.ColLon)
	if err != nil {
		return well.Record{}, err
	}

	return well.Record{
		ID:               id,
		Lat:              lat,
		Lon:              lon,
		Name:             detail.Get(source.ColWellName, well.UnknownValue),
		Depth:            detail.Get(source.ColWellDepth, well.UnknownValue),
		Aquifer:          detail.Get(source.ColAquiferPicks, well.UnknownValue),
		Elevation:        detail.Get(source.ColElevation, well.UnknownValue),
		TopCasing:        detail.Get(source.ColTopCasing, ""),
		BottomCasing:     detail.Get(source.ColBottomCasing, ""),
		County:           detail.Get(source.ColCounty, ""),
		LogDate:          detail.Get(source.ColLogDate, ""),
		LogType:          detail.Get(source.ColLogType, ""),
		LocationAccuracy: detail.Get(source.ColLocationAccuracy, ""),
		MoreInfo:         detail.Get(source.ColMoreInformation, ""),
	}, nil
}

func parseCoord(row source.Row, column string) (float64, error) {
	raw, ok := row.Lookup(column)
	if !ok {
		return 0, fmt.Errorf("missing column %q", column)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", column, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %s: non-finite value %q", column, raw)
	}
	return v, nil
}
