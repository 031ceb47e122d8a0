// Package source describes the raw rows read from the coordinate and
// detail tables before they are merged.
package source

// Row maps header names to cell text. A column missing from a short row is
// absent from the map rather than present as "".
type Row map[string]string

// Lookup returns the cell for column and whether the column was present.
func (r Row) Lookup(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Get returns the cell for column, or def when the column is absent.
func (r Row) Get(column, def string) string {
	if v, ok := r[column]; ok {
		return v
	}
	return def
}

// Coordinate table columns.
const (
	ColLat = "lat"
	ColLon = "lon"
)

// Detail table columns (DWR geophysical log export).
const (
	ColWellName         = "Well Name"
	ColWellDepth        = "Well Depth"
	ColAquiferPicks     = "Aquifer Picks"
	ColElevation        = "Elevation"
	ColTopCasing        = "Top Perforated Casing"
	ColBottomCasing     = "Bottom Perforated Casing"
	ColCounty           = "County"
	ColLogDate          = "Log Date"
	ColLogType          = "Log Type"
	ColLocationAccuracy = "Location Accuracy"
	ColMoreInformation  = "More Information"
)
