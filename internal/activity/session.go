package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"backend-healthband/internal/location"
	"backend-healthband/internal/shared/geo"
	"backend-healthband/internal/vitals"
)

var (
	ErrSessionActive   = errors.New("a session is already active")
	ErrNoActiveSession = errors.New("no active session")
)

type recordCreator interface {
	CreateRecord(ctx context.Context, rec Record) (Record, error)
}

// Session coordinates the location sampler, the wall-clock timer and the
// vitals aggregator for one user. States move Idle -> Starting -> Active ->
// Stopping -> Idle; the path and the timer only progress while Active.
type Session struct {
	userID  string
	sampler location.Sampler
	feed    *vitals.Feed
	agg     *vitals.Aggregator
	store   recordCreator
	now     func() time.Time

	mu        sync.Mutex
	state     State
	startedAt time.Time
	elapsed   int64
	path      []location.Point
	watch     *location.Watch
	feedSub   int
	stopTick  chan struct{}
}

func NewSession(userID string, sampler location.Sampler, feed *vitals.Feed, store recordCreator) *Session {
	return &Session{
		userID:  userID,
		sampler: sampler,
		feed:    feed,
		agg:     vitals.NewAggregator(),
		store:   store,
		now:     time.Now,
		state:   StateIdle,
	}
}

// Start transitions Idle -> Starting -> Active. On permission denial or an
// unavailable sampler the session falls back to Idle and no record is ever
// created.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.state = StateStarting
	s.mu.Unlock()

	s.agg.Reset()

	granted, err := s.sampler.RequestPermission(ctx, s.userID)
	if err != nil {
		s.toIdle()
		return fmt.Errorf("tracking did not start: %w", err)
	}
	if !granted {
		s.toIdle()
		return location.ErrPermissionDenied
	}

	watch, err := s.sampler.Watch(ctx, s.userID, s.addPoint)
	if err != nil {
		s.toIdle()
		return fmt.Errorf("tracking did not start: %w", err)
	}

	s.mu.Lock()
	s.state = StateActive
	s.startedAt = s.now()
	s.elapsed = 0
	s.path = nil
	s.watch = watch
	s.stopTick = make(chan struct{})
	if s.feed != nil {
		s.feedSub = s.feed.Subscribe(s.agg.Observe)
	}
	go s.runTimer(s.stopTick)
	s.mu.Unlock()
	return nil
}

// Stop unsubscribes both live feeds, snapshots the collected data, persists
// one record and returns to Idle whether or not persistence succeeded. On
// failure the collected data is dropped and the error surfaced.
func (s *Session) Stop(ctx context.Context) (Record, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return Record{}, ErrNoActiveSession
	}
	s.state = StateStopping
	watch := s.watch
	stopTick := s.stopTick
	feedSub := s.feedSub
	s.mu.Unlock()

	watch.Stop()
	if s.feed != nil {
		s.feed.Unsubscribe(feedSub)
	}
	close(stopTick)

	endTime := s.now()

	s.mu.Lock()
	path := append([]location.Point(nil), s.path...)
	startedAt := s.startedAt
	s.mu.Unlock()

	heartRate, oxygen := s.agg.Snapshot()

	lats := make([]float64, len(path))
	lngs := make([]float64, len(path))
	for i, p := range path {
		lats[i] = p.Lat
		lngs[i] = p.Lng
	}

	rec := Record{
		UserUID:        s.userID,
		StartTime:      startedAt,
		EndTime:        endTime,
		Duration:       int64(endTime.Sub(startedAt).Seconds()),
		Distance:       geo.PathDistanceM(lats, lngs),
		HeartRateMax:   heartRate.Max,
		HeartRateMed:   s.agg.Average(vitals.MetricHeartRate),
		HeartRateMin:   heartRate.Min,
		OxygenLevelMax: oxygen.Max,
		OxygenLevelMed: s.agg.Average(vitals.MetricOxygenLevel),
		OxygenLevelMin: oxygen.Min,
		LocationPath:   path,
	}

	created, err := s.store.CreateRecord(ctx, rec)

	s.mu.Lock()
	s.state = StateIdle
	s.path = nil
	s.watch = nil
	s.elapsed = 0
	s.mu.Unlock()

	if err != nil {
		return Record{}, err
	}
	return created, nil
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		State:      s.state,
		ElapsedSec: s.elapsed,
		PointCount: len(s.path),
	}
	if s.state == StateActive || s.state == StateStopping {
		st.StartedAt = s.startedAt
	}
	return st
}

// addPoint retains every delivered fix, in capture order. Fixes arriving
// outside Active are ignored.
func (s *Session) addPoint(p location.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return
	}
	s.path = append(s.path, p)
}

// runTimer recomputes elapsed from the start time once a second so the value
// never drifts from the wall clock.
func (s *Session) runTimer(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.state == StateActive {
				s.elapsed = int64(s.now().Sub(s.startedAt).Seconds())
			}
			s.mu.Unlock()
		}
	}
}

func (s *Session) toIdle() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}
