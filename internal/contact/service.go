package contact

import (
	"context"
	"errors"
	"regexp"

	"backend-healthband/internal/db"
	"backend-healthband/internal/shared/phone"

	"github.com/google/uuid"
)

var (
	ErrMissingFields = errors.New("name, email and phone required")
	ErrInvalidEmail  = errors.New("invalid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	db          db.Querier
	phonePrefix string
}

func NewService(db db.Querier, phonePrefix string) *Service {
	return &Service{db: db, phonePrefix: phonePrefix}
}

// Create validates the entry before anything reaches the store. Validation
// failures never cause a network call.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Contact, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return Contact{}, ErrMissingFields
	}
	if !emailPattern.MatchString(req.Email) {
		return Contact{}, ErrInvalidEmail
	}
	normalized, err := phone.Normalize(req.Phone, s.phonePrefix)
	if err != nil {
		return Contact{}, err
	}

	contact := Contact{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  normalized,
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO contacts (id, user_id, name, email, phone)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, contact.ID, contact.UserID, contact.Name, contact.Email, contact.Phone)
	if err := row.Scan(&contact.CreatedAt); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Contact, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, email, phone, created_at
		FROM contacts WHERE user_id=$1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// Delete removes the entry only when it belongs to the caller.
func (s *Service) Delete(ctx context.Context, userID, contactID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM contacts WHERE id=$1 AND user_id=$2
	`, contactID, userID)
	return err
}
