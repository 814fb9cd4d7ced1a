package profile

import (
	"context"
	"time"

	"backend-healthband/internal/db"
	"backend-healthband/internal/location"
	"backend-healthband/internal/shared/phone"
)

type Service struct {
	db          db.Querier
	phonePrefix string
}

func NewService(db db.Querier, phonePrefix string) *Service {
	return &Service{db: db, phonePrefix: phonePrefix}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, name, phone, last_lat, last_lng, last_location_at, created_at, updated_at
		FROM users WHERE id=$1
	`, userID)

	var p Profile
	var lat, lng *float64
	var locatedAt *time.Time
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Phone, &lat, &lng, &locatedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	if lat != nil && lng != nil {
		point := location.Point{Lat: *lat, Lng: *lng}
		if locatedAt != nil {
			point.RecordedAt = *locatedAt
		}
		p.LastLocation = &point
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Phone != "" {
		normalized, err := phone.Normalize(req.Phone, s.phonePrefix)
		if err != nil {
			return Profile{}, err
		}
		p.Phone = normalized
	}

	_, err = s.db.Exec(ctx, `
		UPDATE users SET name=$2, phone=$3, updated_at=NOW()
		WHERE id=$1
	`, p.ID, p.Name, p.Phone)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// UpdateLocation stores the user's last known position, as done after login
// and on the periodic location ping.
func (s *Service) UpdateLocation(ctx context.Context, userID string, p location.Point) error {
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now()
	}
	_, err := s.db.Exec(ctx, `
		UPDATE users SET last_lat=$2, last_lng=$3, last_location_at=$4
		WHERE id=$1
	`, userID, p.Lat, p.Lng, p.RecordedAt)
	return err
}
