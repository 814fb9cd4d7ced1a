package location

import "time"

// Point is a single position fix. Immutable once captured.
type Point struct {
	Lat        float64   `json:"latitude"`
	Lng        float64   `json:"longitude"`
	RecordedAt time.Time `json:"timestamp,omitempty"`
}
