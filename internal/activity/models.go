package activity

import (
	"time"

	"backend-healthband/internal/location"
)

type State string

const (
	StateIdle     State = "idle"
	StateStarting State = "starting"
	StateActive   State = "active"
	StateStopping State = "stopping"
)

// Record is the persisted outcome of one tracking session. Field names match
// the documents the mobile app reads.
type Record struct {
	ID             string           `json:"id"`
	UserUID        string           `json:"UserUID"`
	StartTime      time.Time        `json:"startTime"`
	EndTime        time.Time        `json:"endTime"`
	Duration       int64            `json:"duration"`
	Distance       float64          `json:"distance"`
	HeartRateMax   int              `json:"heartRateMax"`
	HeartRateMed   int              `json:"heartRateMed"`
	HeartRateMin   int              `json:"heartRateMin"`
	OxygenLevelMax int              `json:"oxygenLevelMax"`
	OxygenLevelMed int              `json:"oxygenLevelMed"`
	OxygenLevelMin int              `json:"oxygenLevelMin"`
	LocationPath   []location.Point `json:"locationPath"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Status describes the live session as shown on the tracking screen.
type Status struct {
	State      State     `json:"state"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	ElapsedSec int64     `json:"elapsed_sec"`
	PointCount int       `json:"point_count"`
}
