package vitals

// Sample is one full-state snapshot published by the wearable. Fields the
// device did not report come through as zero and are skipped by the
// aggregator.
type Sample struct {
	HeartRate   int     `json:"bpm"`
	OxygenLevel int     `json:"oxigenacao"`
	Altitude    float64 `json:"altitude"`
	Pressure    float64 `json:"pressao_atmosferica"`
}

type Metric string

const (
	MetricHeartRate   Metric = "heart_rate"
	MetricOxygenLevel Metric = "oxygen_level"
)

// Series holds every observed value for one metric plus its running extremes.
// Max and Min equal the extremes of Values whenever Values is non-empty and
// are zero otherwise.
type Series struct {
	Values []int `json:"values"`
	Max    int   `json:"max"`
	Min    int   `json:"min"`
}

func (s *Series) append(v int) {
	s.Values = append(s.Values, v)
	if len(s.Values) == 1 {
		s.Max = v
		s.Min = v
		return
	}
	if v > s.Max {
		s.Max = v
	}
	if v < s.Min {
		s.Min = v
	}
}

func (s Series) average() int {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range s.Values {
		sum += v
	}
	return int(float64(sum)/float64(len(s.Values)) + 0.5)
}
