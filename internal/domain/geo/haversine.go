package geo

import (
	"math"
	"strconv"
)

// EarthRadiusMiles is the sphere radius used for great-circle distances.
const EarthRadiusMiles = 3959.0

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceMiles returns the haversine great-circle distance in miles between
// two points given in decimal degrees. Inputs are not range-checked.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := toRadians(lat1)
	lat2r := toRadians(lat2)
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	// float64 conversions keep the compiler from fusing into FMA.
	a := float64(sinLat*sinLat) + float64(math.Cos(lat1r)*math.Cos(lat2r)*float64(sinLon*sinLon))
	// asin(sqrt(a)), not atan2.
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusMiles * c
}

// RoundTo rounds v to the given number of decimal places using the exact
// binary value of v (half-even on exact ties), the same result a correctly
// rounded decimal formatter produces.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
