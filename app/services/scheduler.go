package services

import (
	"context"
	"log"
	"time"
)

// StatusScheduler periodically moves events through Upcoming, Open and
// Ended based on their dates.
type StatusScheduler struct {
	events   EventStatusStore
	interval time.Duration
	now      func() time.Time
}

func NewStatusScheduler(events EventStatusStore, interval time.Duration) *StatusScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatusScheduler{events: events, interval: interval, now: time.Now}
}

// Start runs the scheduler in a goroutine until ctx is cancelled. The
// returned channel is closed once the loop has exited.
func (s *StatusScheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Printf("[scheduler] started, interval %s", s.interval)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.Tick(ctx)
		for {
			select {
			case <-ctx.Done():
				log.Println("[scheduler] stopped")
				return
			case <-ticker.C:
				s.Tick(ctx)
			}
		}
	}()
	return done
}

// Tick applies one round of status transitions and returns how many events
// changed.
func (s *StatusScheduler) Tick(ctx context.Context) int64 {
	changed, err := s.events.AdvanceEventStatuses(ctx, s.now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("[scheduler] error advancing event statuses: %v", err)
		}
		return 0
	}
	if changed > 0 {
		log.Printf("[scheduler] updated status of %d events", changed)
	}
	return changed
}
