package emergency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("sos webhook not configured")

// Service triggers the external emergency webhook. The call is a single GET;
// only the status code matters, any 2xx counts as delivered.
type Service struct {
	client     *resty.Client
	webhookURL string
}

func NewService(webhookURL string) *Service {
	client := resty.New().SetTimeout(10 * time.Second)
	return &Service{client: client, webhookURL: webhookURL}
}

func (s *Service) SendSOS(ctx context.Context) error {
	if s.webhookURL == "" {
		return ErrNotConfigured
	}

	resp, err := s.client.R().SetContext(ctx).Get(s.webhookURL)
	if err != nil {
		return fmt.Errorf("sos webhook unreachable: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("sos webhook rejected: status %d", resp.StatusCode())
	}
	return nil
}
