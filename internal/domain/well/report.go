package well

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Drilling cost per foot in dollars, typical Colorado range.
const (
	CostPerFootLow  = 15
	CostPerFootHigh = 30
)

var depthRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// DepthRange is the min/max of the parseable depths in a report.
type DepthRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CostEstimate is a drilling cost range in whole dollars.
type CostEstimate struct {
	Low  int64 `json:"low"`
	High int64 `json:"high"`
}

// Report summarizes the wells nearest to a target location.
type Report struct {
	QueryResult
	Aquifers      []string     `json:"aquifers"`
	AvgDepth      int64        `json:"avg_depth"`
	DepthRange    DepthRange   `json:"depth_range"`
	EstimatedCost CostEstimate `json:"estimated_cost"`
}

// NewReport aggregates aquifers, depth statistics and a cost estimate over
// the nearest wells of res.
func NewReport(res QueryResult) Report {
	rep := Report{QueryResult: res, Aquifers: Aquifers(res.NearestWells)}

	var depths []float64
	for _, w := range res.NearestWells {
		if d, ok := ParseDepth(w.Depth); ok {
			depths = append(depths, d)
		}
	}
	if len(depths) == 0 {
		return rep
	}

	sum := 0.0
	rep.DepthRange = DepthRange{Min: depths[0], Max: depths[0]}
	for _, d := range depths {
		sum += d
		rep.DepthRange.Min = math.Min(rep.DepthRange.Min, d)
		rep.DepthRange.Max = math.Max(rep.DepthRange.Max, d)
	}
	rep.AvgDepth = roundHalfUp(sum / float64(len(depths)))
	rep.EstimatedCost = CostEstimate{
		Low:  roundHalfUp(float64(rep.AvgDepth * CostPerFootLow)),
		High: roundHalfUp(float64(rep.AvgDepth * CostPerFootHigh)),
	}
	return rep
}

// Aquifers returns the sorted set of aquifer names listed by wells. Aquifer
// fields are comma-separated; the Unknown sentinel and blanks are skipped.
func Aquifers(wells []Distanced) []string {
	seen := make(map[string]struct{})
	for _, w := range wells {
		if w.Aquifer == "" || w.Aquifer == UnknownValue {
			continue
		}
		for _, part := range strings.Split(w.Aquifer, ",") {
			if name := strings.TrimSpace(part); name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ParseDepth extracts the first decimal number from a depth string such as
// "1000.00 ft". Returns false when none is present.
func ParseDepth(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	m := depthRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	d, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return d, true
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
