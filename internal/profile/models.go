package profile

import (
	"time"

	"backend-healthband/internal/location"
)

// Profile is the user document shown on the profile screen, including the
// last position reported by the device.
type Profile struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	LastLocation *location.Point `json:"lastLocation,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type UpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
