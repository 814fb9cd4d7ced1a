package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrNoFix            = errors.New("no location fix available")
	ErrUnavailable      = errors.New("positioning service unavailable")
)

// Sampler acquires position fixes for a user. Permission must be requested,
// and granted, before sampling.
type Sampler interface {
	RequestPermission(ctx context.Context, userID string) (bool, error)
	Current(ctx context.Context, userID string) (Point, error)
	Watch(ctx context.Context, userID string, onFix func(Point)) (*Watch, error)
}

// Watch is a handle for a continuous fix subscription.
type Watch struct {
	stop func()
}

// NewWatch wraps a release function. Sampler implementations and test fakes
// build their handles with it.
func NewWatch(stop func()) *Watch {
	return &Watch{stop: stop}
}

func (w *Watch) Stop() {
	if w != nil && w.stop != nil {
		w.stop()
	}
}

// RedisSampler reads fixes the device app publishes over Redis. Fixes arrive
// on a per-user channel at whatever cadence the device reports; the last fix
// is cached for one-shot reads.
type RedisSampler struct {
	client *redis.Client
}

func NewRedisSampler(client *redis.Client) *RedisSampler {
	return &RedisSampler{client: client}
}

func (s *RedisSampler) RequestPermission(ctx context.Context, userID string) (bool, error) {
	if s.client == nil {
		return false, ErrUnavailable
	}
	val, err := s.client.Get(ctx, permissionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "granted", nil
}

// SetPermission records the user's grant or denial of location access.
func (s *RedisSampler) SetPermission(ctx context.Context, userID string, granted bool) error {
	if s.client == nil {
		return ErrUnavailable
	}
	val := "denied"
	if granted {
		val = "granted"
	}
	return s.client.Set(ctx, permissionKey(userID), val, 0).Err()
}

// Publish fans a device-reported fix out to watchers and caches it as the
// user's last known position.
func (s *RedisSampler) Publish(ctx context.Context, userID string, p Point) error {
	if s.client == nil {
		return ErrUnavailable
	}
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now()
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, lastFixKey(userID), payload, 0).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, fixChannel(userID), payload).Err()
}

func (s *RedisSampler) Current(ctx context.Context, userID string) (Point, error) {
	if s.client == nil {
		return Point{}, ErrUnavailable
	}
	granted, err := s.RequestPermission(ctx, userID)
	if err != nil {
		return Point{}, err
	}
	if !granted {
		return Point{}, ErrPermissionDenied
	}

	payload, err := s.client.Get(ctx, lastFixKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Point{}, ErrNoFix
	}
	if err != nil {
		return Point{}, err
	}
	var p Point
	if err := json.Unmarshal(payload, &p); err != nil {
		return Point{}, err
	}
	return p, nil
}

func (s *RedisSampler) Watch(ctx context.Context, userID string, onFix func(Point)) (*Watch, error) {
	if s.client == nil {
		return nil, ErrUnavailable
	}

	pubsub := s.client.Subscribe(ctx, fixChannel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	go func() {
		for msg := range pubsub.Channel() {
			var p Point
			if err := json.Unmarshal([]byte(msg.Payload), &p); err != nil {
				log.Printf("location watch: bad fix payload: %v", err)
				continue
			}
			onFix(p)
		}
	}()

	return NewWatch(func() { _ = pubsub.Close() }), nil
}

func permissionKey(userID string) string {
	return fmt.Sprintf("location:permission:%s", userID)
}

func lastFixKey(userID string) string {
	return fmt.Sprintf("location:last:%s", userID)
}

func fixChannel(userID string) string {
	return fmt.Sprintf("location:fixes:%s", userID)
}
