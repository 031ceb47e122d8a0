package merge

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/wellfinder/internal/domain/source"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
	"github.com/kailas-cloud/wellfinder/internal/repository/snapshot"
)

func coord(lat, lon string) source.Row {
	return source.Row{source.ColLat: lat, source.ColLon: lon}
}

func detail(county, name string) source.Row {
	return source.Row{source.ColCounty: county, source.ColWellName: name}
}

func TestMerge_EndToEndScenario(t *testing.T) {
	coords := []source.Row{coord("39.3722", "-104.8561")}
	details := []source.Row{{
		source.ColCounty:    "Douglas",
		source.ColWellName:  "Test Well",
		source.ColWellDepth: "100",
	}}

	wells, stats := New(nil).Merge(coords, details, "DOUGLAS")
	if len(wells) != 1 {
		t.Fatalf("expected 1 well, got %d", len(wells))
	}
	w := wells[0]
	if w.ID != 0 || w.Name != "Test Well" || w.Depth != "100" || w.County != "Douglas" {
		t.Errorf("unexpected record: %+v", w)
	}
	if w.Lat != 39.3722 || w.Lon != -104.8561 {
		t.Errorf("coords = (%f, %f)", w.Lat, w.Lon)
	}
	if stats.Kept != 1 || stats.Dropped() != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestMerge_FieldDefaults(t *testing.T) {
	coords := []source.Row{coord("39", "-105")}
	details := []source.Row{{source.ColCounty: "DOUGLAS"}}

	wells, _ := New(nil).Merge(coords, details, "douglas")
	if len(wells) != 1 {
		t.Fatalf("expected 1 well, got %d", len(wells))
	}
	want := well.Record{
		ID: 0, Lat: 39, Lon: -105,
		Name:      well.UnknownValue,
		Depth:     well.UnknownValue,
		Aquifer:   well.UnknownValue,
		Elevation: well.UnknownValue,
		County:    "DOUGLAS",
	}
	if wells[0] != want {
		t.Errorf("want %+v\ngot  %+v", want, wells[0])
	}
}

func TestMerge_PresentEmptyCellsKeptVerbatim(t *testing.T) {
	coords := []source.Row{coord("39", "-105")}
	details := []source.Row{{
		source.ColCounty:          "Douglas",
		source.ColWellName:        "",
		source.ColWellDepth:       "",
		source.ColMoreInformation: "https://dwr.state.co.us/",
	}}

	wells, _ := New(nil).Merge(coords, details, "Douglas")
	if len(wells) != 1 {
		t.Fatalf("expected 1 well, got %d", len(wells))
	}
	if wells[0].Name != "" || wells[0].Depth != "" {
		t.Errorf("present empty cells must not be defaulted: %+v", wells[0])
	}
	if wells[0].Aquifer != well.UnknownValue {
		t.Errorf("absent aquifer should default to Unknown, got %q", wells[0].Aquifer)
	}
	if wells[0].MoreInfo != "https://dwr.state.co.us/" {
		t.Errorf("MoreInfo = %q", wells[0].MoreInfo)
	}
}

func TestMerge_CountyFilter(t *testing.T) {
	coords := []source.Row{
		coord("39.1", "-104.1"),
		coord("39.2", "-104.2"),
		coord("39.3", "-104.3"),
		coord("39.4", "-104.4"),
		coord("39.5", "-104.5"),
	}
	details := []source.Row{
		detail("Douglas", "a"),
		detail("ELBERT", "b"),
		detail("douglas", "c"),
		{source.ColWellName: "no county"},
		detail(" Douglas", "padded"),
	}

	wells, stats := New(nil).Merge(coords, details, "Douglas")
	if len(wells) != 2 {
		t.Fatalf("expected 2 wells, got %d: %+v", len(wells), wells)
	}
	for _, w := range wells {
		if strings.ToUpper(w.County) != "DOUGLAS" {
			t.Errorf("record from county %q leaked through filter", w.County)
		}
	}
	if wells[0].ID != 0 || wells[1].ID != 2 {
		t.Errorf("ids must be source row positions, got %d and %d", wells[0].ID, wells[1].ID)
	}
	if stats.DroppedCounty != 3 {
		t.Errorf("DroppedCounty = %d, want 3", stats.DroppedCounty)
	}
}

func TestMerge_DefaultCounty(t *testing.T) {
	coords := []source.Row{coord("39", "-105"), coord("40", "-105")}
	details := []source.Row{detail("Douglas", "d"), detail("Elbert", "e")}

	wells, _ := New(nil).Merge(coords, details, "")
	if len(wells) != 1 || wells[0].Name != "d" {
		t.Fatalf("empty county should default to %s, got %+v", DefaultCounty, wells)
	}
}

func TestMerge_BadRowsSkippedWithoutHalting(t *testing.T) {
	coords := []source.Row{
		coord("not-a-number", "-104.1"),
		coord("39.2", ""),
		{source.ColLon: "-104.3"}, // lat column missing
		coord("NaN", "-104.4"),
		coord(" 39.5 ", "-104.5"),
	}
	details := []source.Row{
		detail("Douglas", "bad lat"),
		detail("Douglas", "empty lon"),
		detail("Douglas", "missing lat"),
		detail("Douglas", "nan lat"),
		detail("Douglas", "good"),
	}

	wells, stats := New(nil).Merge(coords, details, "DOUGLAS")
	if len(wells) != 1 {
		t.Fatalf("expected 1 well, got %d: %+v", len(wells), wells)
	}
	if wells[0].Name != "good" || wells[0].ID != 4 || wells[0].Lat != 39.5 {
		t.Errorf("unexpected record: %+v", wells[0])
	}
	if stats.DroppedParse != 4 {
		t.Errorf("DroppedParse = %d, want 4", stats.DroppedParse)
	}
}

func TestMerge_ClipsToShorterSource(t *testing.T) {
	coords := []source.Row{coord("39", "-105"), coord("39.1", "-105"), coord("39.2", "-105")}
	details := []source.Row{detail("Douglas", "a")}

	wells, stats := New(nil).Merge(coords, details, "DOUGLAS")
	if len(wells) > min(len(coords), len(details)) {
		t.Fatalf("output longer than shorter source: %d", len(wells))
	}
	if stats.Paired != 1 || stats.IgnoredExcess != 2 {
		t.Errorf("stats = %+v", stats)
	}

	wells, stats = New(nil).Merge(coords[:1], []source.Row{detail("Douglas", "a"), detail("Douglas", "b")}, "DOUGLAS")
	if len(wells) != 1 || stats.IgnoredExcess != 1 {
		t.Errorf("details longer: wells=%d stats=%+v", len(wells), stats)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	wells, stats := New(nil).Merge(nil, nil, "DOUGLAS")
	if wells == nil || len(wells) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", wells)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	coords := []source.Row{coord("39.1", "-104.1"), coord("x", "-104.2"), coord("39.3", "-104.3")}
	details := []source.Row{detail("Douglas", "a"), detail("Douglas", "b"), detail("DOUGLAS", "c")}

	svc := New(nil)
	first, _ := svc.Merge(coords, details, "DOUGLAS")
	second, _ := svc.Merge(coords, details, "DOUGLAS")

	store := snapshot.New()
	dir := t.TempDir()
	ctx := context.Background()
	pathA, pathB := filepath.Join(dir, "first.json"), filepath.Join(dir, "second.json")
	if err := store.SaveWells(ctx, pathA, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.SaveWells(ctx, pathB, second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	a, err := os.ReadFile(pathA)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("merge is not deterministic:\n%s\n%s", a, b)
	}
}
