package reservation

import (
	"context"
	"log"
	"time"
)

// Scheduler periodically promotes pending reservations whose stay date has
// arrived. It is owned by the process supervisor and stops when its context
// is cancelled.
type Scheduler struct {
	service  Service
	interval time.Duration
}

func NewScheduler(service Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		service:  service,
		interval: interval,
	}
}

// Run blocks, scanning once per interval, until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("reservation scheduler running every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("reservation scheduler stopped")
			return
		case <-ticker.C:
			promoted, err := s.service.PromoteDue(ctx, time.Now().UTC())
			if err != nil {
				log.Printf("reservation scheduler scan failed: %v", err)
				continue
			}
			if promoted > 0 {
				log.Printf("reservation scheduler confirmed %d reservations", promoted)
			}
		}
	}
}
