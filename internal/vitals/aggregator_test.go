package vitals

import "testing"

func TestAggregatorScenario(t *testing.T) {
	agg := NewAggregator()
	agg.Observe(Sample{HeartRate: 70})
	agg.Observe(Sample{HeartRate: 75, OxygenLevel: 98})
	agg.Observe(Sample{HeartRate: 72})

	hr, ox := agg.Snapshot()
	if len(hr.Values) != 3 || hr.Values[0] != 70 || hr.Values[1] != 75 || hr.Values[2] != 72 {
		t.Fatalf("unexpected heart rate series: %v", hr.Values)
	}
	if hr.Max != 75 || hr.Min != 70 {
		t.Fatalf("unexpected heart rate extremes: max=%d min=%d", hr.Max, hr.Min)
	}
	if got := agg.Average(MetricHeartRate); got != 72 {
		t.Fatalf("unexpected heart rate average: %d", got)
	}

	if len(ox.Values) != 1 || ox.Values[0] != 98 {
		t.Fatalf("unexpected oxygen series: %v", ox.Values)
	}
	if ox.Max != 98 || ox.Min != 98 {
		t.Fatalf("unexpected oxygen extremes: max=%d min=%d", ox.Max, ox.Min)
	}
	if got := agg.Average(MetricOxygenLevel); got != 98 {
		t.Fatalf("unexpected oxygen average: %d", got)
	}
}

func TestAggregatorBounds(t *testing.T) {
	agg := NewAggregator()
	values := []int{88, 54, 120, 61, 99, 73}
	for _, v := range values {
		agg.Observe(Sample{HeartRate: v})
	}

	hr, _ := agg.Snapshot()
	for _, v := range hr.Values {
		if v > hr.Max || v < hr.Min {
			t.Fatalf("value %d outside [%d,%d]", v, hr.Min, hr.Max)
		}
	}
	avg := agg.Average(MetricHeartRate)
	if avg < hr.Min || avg > hr.Max {
		t.Fatalf("average %d outside [%d,%d]", avg, hr.Min, hr.Max)
	}
}

func TestAggregatorRoundsHalfUp(t *testing.T) {
	agg := NewAggregator()
	agg.Observe(Sample{HeartRate: 70})
	agg.Observe(Sample{HeartRate: 71})
	// mean 70.5 rounds up
	if got := agg.Average(MetricHeartRate); got != 71 {
		t.Fatalf("expected 71, got %d", got)
	}
}

func TestAggregatorSkipsAbsentFields(t *testing.T) {
	agg := NewAggregator()
	agg.Observe(Sample{OxygenLevel: 97})
	agg.Observe(Sample{HeartRate: 80})
	agg.Observe(Sample{Altitude: 800, Pressure: 1013})

	hr, ox := agg.Snapshot()
	if len(hr.Values) != 1 || len(ox.Values) != 1 {
		t.Fatalf("expected one value per series, got hr=%v ox=%v", hr.Values, ox.Values)
	}
}

func TestAggregatorEmptyAndReset(t *testing.T) {
	agg := NewAggregator()
	if agg.Average(MetricHeartRate) != 0 || agg.Average(MetricOxygenLevel) != 0 {
		t.Fatalf("expected zero averages when empty")
	}

	agg.Observe(Sample{HeartRate: 90, OxygenLevel: 95})
	agg.Reset()

	hr, ox := agg.Snapshot()
	if len(hr.Values) != 0 || hr.Max != 0 || hr.Min != 0 {
		t.Fatalf("expected cleared heart rate series: %+v", hr)
	}
	if len(ox.Values) != 0 || ox.Max != 0 || ox.Min != 0 {
		t.Fatalf("expected cleared oxygen series: %+v", ox)
	}
	if agg.Average(MetricHeartRate) != 0 {
		t.Fatalf("expected zero average after reset")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	agg := NewAggregator()
	agg.Observe(Sample{HeartRate: 60})
	hr, _ := agg.Snapshot()
	hr.Values[0] = 999

	again, _ := agg.Snapshot()
	if again.Values[0] != 60 {
		t.Fatalf("snapshot aliases internal state")
	}
}
