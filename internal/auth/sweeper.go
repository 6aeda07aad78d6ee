package auth

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/kdimtricp/videogrid/internal/logger"
)

// Sweeper periodically drops expired sessions and idle login buckets.
type Sweeper struct {
	scheduler gocron.Scheduler
	provider  *Provider
	limiter   *LoginLimiter
	logger    logger.Logger
}

func NewSweeper(provider *Provider, limiter *LoginLimiter, interval time.Duration, log logger.Logger) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Sweeper{
		scheduler: scheduler,
		provider:  provider,
		limiter:   limiter,
		logger:    log.WithComponent("SessionSweeper"),
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.Sweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	return s, nil
}

// Sweep runs one pass.
func (s *Sweeper) Sweep() {
	sessions := s.provider.SweepExpired()
	clients := 0
	if s.limiter != nil {
		clients = s.limiter.Prune()
	}
	if sessions > 0 || clients > 0 {
		s.logger.Debug("Swept expired state", "sessions", sessions, "clients", clients)
	}
}

func (s *Sweeper) Start() {
	s.scheduler.Start()
}

func (s *Sweeper) Shutdown() error {
	return s.scheduler.Shutdown()
}
