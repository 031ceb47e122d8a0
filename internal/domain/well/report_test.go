package well

import (
	"reflect"
	"testing"
)

func distanced(aquifer, depth string) Distanced {
	return Distanced{Record: Record{Aquifer: aquifer, Depth: depth}}
}

func TestParseDepth(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1000", 1000, true},
		{"1000.00 ft", 1000, true},
		{"approx 875.5 feet", 875.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{UnknownValue, 0, false},
		{"12.", 12, true},
	}
	for _, tt := range tests {
		got, ok := ParseDepth(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDepth(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAquifers(t *testing.T) {
	wells := []Distanced{
		distanced("Upper Dawson, Lower Dawson", ""),
		distanced(UnknownValue, ""),
		distanced("", ""),
		distanced("Denver,Upper Dawson, ", ""),
		distanced("Arapahoe", ""),
	}
	want := []string{"Arapahoe", "Denver", "Lower Dawson", "Upper Dawson"}
	if got := Aquifers(wells); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestAquifers_Empty(t *testing.T) {
	got := Aquifers(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestNewReport(t *testing.T) {
	res := QueryResult{
		Target: Target{Lat: 39.3722, Lon: -104.8561, Name: "Castle Rock"},
		NearestWells: []Distanced{
			distanced("Denver", "1000.00 ft"),
			distanced("Arapahoe", "501"),
			distanced(UnknownValue, UnknownValue),
		},
	}
	rep := NewReport(res)

	if rep.AvgDepth != 751 { // 750.5 rounds half up
		t.Errorf("AvgDepth = %d, want 751", rep.AvgDepth)
	}
	if rep.DepthRange != (DepthRange{Min: 501, Max: 1000}) {
		t.Errorf("DepthRange = %+v", rep.DepthRange)
	}
	if rep.EstimatedCost != (CostEstimate{Low: 751 * 15, High: 751 * 30}) {
		t.Errorf("EstimatedCost = %+v", rep.EstimatedCost)
	}
	if !reflect.DeepEqual(rep.Aquifers, []string{"Arapahoe", "Denver"}) {
		t.Errorf("Aquifers = %v", rep.Aquifers)
	}
	if rep.Target.Name != "Castle Rock" || len(rep.NearestWells) != 3 {
		t.Errorf("query result not carried through: %+v", rep.QueryResult)
	}
}

func TestNewReport_NoDepths(t *testing.T) {
	rep := NewReport(QueryResult{NearestWells: []Distanced{distanced("", "")}})
	if rep.AvgDepth != 0 || rep.DepthRange != (DepthRange{}) || rep.EstimatedCost != (CostEstimate{}) {
		t.Fatalf("want zero statistics, got %+v", rep)
	}
}
