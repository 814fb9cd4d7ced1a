package geo

import "testing"

func TestHaversineKm(t *testing.T) {
	// Sao Paulo (-23.5505, -46.6333) to Rio (-22.9068, -43.1729) ~ 360 km
	d := HaversineKm(-23.5505, -46.6333, -22.9068, -43.1729)
	if d < 330 || d > 390 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestPathDistanceMEquator(t *testing.T) {
	// A thousandth of a degree of longitude at the equator is ~111 meters.
	d := PathDistanceM([]float64{0, 0}, []float64{0, 0.001})
	if d < 110 || d > 112 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestPathDistanceMShortPaths(t *testing.T) {
	if d := PathDistanceM(nil, nil); d != 0 {
		t.Fatalf("expected 0 for empty path, got %v", d)
	}
	if d := PathDistanceM([]float64{1}, []float64{1}); d != 0 {
		t.Fatalf("expected 0 for single point, got %v", d)
	}
}

func TestPathDistanceMAccumulates(t *testing.T) {
	single := PathDistanceM([]float64{0, 0}, []float64{0, 0.001})
	double := PathDistanceM([]float64{0, 0, 0}, []float64{0, 0.001, 0.002})
	if double < single*1.9 || double > single*2.1 {
		t.Fatalf("expected roughly double distance: %v vs %v", double, single)
	}
}
