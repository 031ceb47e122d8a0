// Package well holds the canonical merged well record and the shapes
// derived from it per query.
package well

// UnknownValue is the sentinel some attributes take when their column is absent.
const UnknownValue = "Unknown"

// Record is one merged well. ID is the shared zero-based row index of the two
// source rows it was built from and is only stable within a single merge run.
type Record struct {
	ID               int     `json:"id"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Name             string  `json:"name"`
	Depth            string  `json:"depth"`
	Aquifer          string  `json:"aquifer"`
	Elevation        string  `json:"elevation"`
	TopCasing        string  `json:"top_casing"`
	BottomCasing     string  `json:"bottom_casing"`
	County           string  `json:"county"`
	LogDate          string  `json:"log_date"`
	LogType          string  `json:"log_type"`
	LocationAccuracy string  `json:"location_accuracy"`
	MoreInfo         string  `json:"more_info"`
}

// Distanced is a Record augmented with its distance to a query target.
type Distanced struct {
	Record
	DistanceMiles float64 `json:"distance_miles"`
}

// Target describes the point a query was answered for.
type Target struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// QueryResult is the envelope persisted for one nearest-neighbor query.
type QueryResult struct {
	Target       Target      `json:"target"`
	NearestWells []Distanced `json:"nearest_wells"`
}
