package vitals

import "sync"

// Aggregator accumulates heart-rate and oxygen readings across a tracking
// session. It performs no I/O; samples are pushed in by the feed and results
// are read out when the session stops.
type Aggregator struct {
	mu        sync.Mutex
	heartRate Series
	oxygen    Series
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Observe appends the sample's present fields to their series. A zero field
// means the snapshot did not carry that reading and the series is left as-is.
func (a *Aggregator) Observe(s Sample) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s.HeartRate > 0 {
		a.heartRate.append(s.HeartRate)
	}
	if s.OxygenLevel > 0 {
		a.oxygen.append(s.OxygenLevel)
	}
}

// Average returns the mean of the metric's values rounded to the nearest
// integer, or 0 when nothing has been observed.
func (a *Aggregator) Average(m Metric) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.series(m).average()
}

func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.heartRate = Series{}
	a.oxygen = Series{}
}

// Snapshot returns copies of both series so callers can read a consistent
// state after unsubscribing from the feed.
func (a *Aggregator) Snapshot() (heartRate, oxygen Series) {
	a.mu.Lock()
	defer a.mu.Unlock()

	heartRate = a.heartRate
	heartRate.Values = append([]int(nil), a.heartRate.Values...)
	oxygen = a.oxygen
	oxygen.Values = append([]int(nil), a.oxygen.Values...)
	return heartRate, oxygen
}

func (a *Aggregator) series(m Metric) *Series {
	if m == MetricOxygenLevel {
		return &a.oxygen
	}
	return &a.heartRate
}
