package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one scheduled unit of work. A failed job is logged; it never stops
// the scheduler.
type Job func() error

// Scheduler runs the analysis job on a cron schedule.
type Scheduler struct {
	Cron *cron.Cron
	job  Job
	log  zerolog.Logger

	// serializes cron-triggered and manual runs
	mu sync.Mutex
}

// NewScheduler creates a new Scheduler. Cron specs carry a leading seconds field.
func NewScheduler(job Job, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		job:  job,
		log:  log,
	}
}

// Register schedules the job at spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("register job %q: %w", spec, err)
	}
	s.log.Info().Str("cron", spec).Msg("job registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes the job immediately (for manual trigger / run on start).
func (s *Scheduler) RunNow() error {
	return s.execute()
}

func (s *Scheduler) run() {
	_ = s.execute()
}

func (s *Scheduler) execute() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info().Msg("running analysis job")
	if err := s.job(); err != nil {
		s.log.Error().Err(err).Msg("analysis job failed")
		return err
	}
	return nil
}
