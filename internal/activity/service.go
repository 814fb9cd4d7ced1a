package activity

import (
	"context"
	"encoding/json"
	"time"

	"backend-healthband/internal/db"
	"backend-healthband/internal/location"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// CreateRecord persists a finished session. The record is immutable once
// stored; the client holds no further write access to it.
func (s *Service) CreateRecord(ctx context.Context, rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	path, err := json.Marshal(rec.LocationPath)
	if err != nil {
		return Record{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO activities (id, user_uid, start_time, end_time, duration_sec, distance_m,
		       heart_rate_max, heart_rate_med, heart_rate_min,
		       oxygen_level_max, oxygen_level_med, oxygen_level_min, location_path)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at
	`, rec.ID, rec.UserUID, rec.StartTime, rec.EndTime, rec.Duration, rec.Distance,
		rec.HeartRateMax, rec.HeartRateMed, rec.HeartRateMin,
		rec.OxygenLevelMax, rec.OxygenLevelMed, rec.OxygenLevelMin, path)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_uid, start_time, end_time, duration_sec, distance_m,
		       heart_rate_max, heart_rate_med, heart_rate_min,
		       oxygen_level_max, oxygen_level_med, oxygen_level_min, location_path, created_at
		FROM activities WHERE id=$1
	`, id)
	return scanRecord(row)
}

// ListByUser returns the user's activities, newest first.
func (s *Service) ListByUser(ctx context.Context, userUID string) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_uid, start_time, end_time, duration_sec, distance_m,
		       heart_rate_max, heart_rate_med, heart_rate_min,
		       oxygen_level_max, oxygen_level_med, oxygen_level_min, location_path, created_at
		FROM activities WHERE user_uid=$1
		ORDER BY start_time DESC
	`, userUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var path []byte
	var startTime, endTime, createdAt time.Time
	if err := row.Scan(&rec.ID, &rec.UserUID, &startTime, &endTime, &rec.Duration, &rec.Distance,
		&rec.HeartRateMax, &rec.HeartRateMed, &rec.HeartRateMin,
		&rec.OxygenLevelMax, &rec.OxygenLevelMed, &rec.OxygenLevelMin, &path, &createdAt); err != nil {
		return Record{}, err
	}
	rec.StartTime = startTime
	rec.EndTime = endTime
	rec.CreatedAt = createdAt
	if len(path) > 0 {
		if err := json.Unmarshal(path, &rec.LocationPath); err != nil {
			return Record{}, err
		}
	}
	if rec.LocationPath == nil {
		rec.LocationPath = []location.Point{}
	}
	return rec, nil
}
