package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/wellfinder/internal/usecase/merge"
)

func TestObserveMerge(t *testing.T) {
	coordsBefore := testutil.ToFloat64(RowsTotal.WithLabelValues("coordinates"))
	parseBefore := testutil.ToFloat64(RowsDroppedTotal.WithLabelValues("parse"))
	excessBefore := testutil.ToFloat64(RowsDroppedTotal.WithLabelValues("excess"))

	ObserveMerge(12, 10, merge.Stats{Paired: 10, Kept: 6, DroppedParse: 1, DroppedCounty: 3, IgnoredExcess: 2})

	if got := testutil.ToFloat64(RowsTotal.WithLabelValues("coordinates")) - coordsBefore; got != 12 {
		t.Errorf("coordinates rows delta = %f, want 12", got)
	}
	if got := testutil.ToFloat64(RowsDroppedTotal.WithLabelValues("parse")) - parseBefore; got != 1 {
		t.Errorf("parse drops delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(RowsDroppedTotal.WithLabelValues("excess")) - excessBefore; got != 2 {
		t.Errorf("excess delta = %f, want 2", got)
	}
	if got := testutil.ToFloat64(WellsMerged); got != 6 {
		t.Errorf("wells_merged = %f, want 6", got)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
