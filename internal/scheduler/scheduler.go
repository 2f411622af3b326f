package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Prewarmer is the part of the analyzer the scheduler drives.
type Prewarmer interface {
	Prewarm(ctx context.Context, places []string) error
}

// Scheduler periodically refreshes cached observations for a fixed set of
// places so interactive analyses rarely wait on upstream providers.
type Scheduler struct {
	prewarmer Prewarmer
	logger    *zap.Logger
	cron      *cron.Cron
	spec      string
	entryID   cron.EntryID
	timeout   time.Duration

	wg sync.WaitGroup

	mu      sync.Mutex
	places  []string
	running bool
	busy    bool
	lastRun time.Time
	lastErr error
}

func NewScheduler(prewarmer Prewarmer, places []string, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		prewarmer: prewarmer,
		logger:    logger,
		cron:      cron.New(),
		spec:      spec,
		places:    places,
		timeout:   2 * time.Minute,
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	// The job survives Stop, so a restart only resumes the cron loop.
	if s.entryID == 0 {
		id, err := s.cron.AddFunc(s.spec, s.runPrewarm)
		if err != nil {
			return err
		}
		s.entryID = id
	}
	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started",
		zap.String("spec", s.spec),
		zap.Time("next_run", s.cron.Entry(s.entryID).Next))

	// Run immediately on start
	s.runAsync()

	return nil
}

func (s *Scheduler) runAsync() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runPrewarm()
	}()
}

func (s *Scheduler) runPrewarm() {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Debug("Skipping prewarm, previous run still active")
		return
	}
	s.busy = true
	places := append([]string(nil), s.places...)
	s.mu.Unlock()

	startTime := time.Now()
	s.logger.Info("Starting scheduled prewarm", zap.Strings("places", places))

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.prewarmer.Prewarm(ctx, places)
	if err != nil {
		s.logger.Error("Scheduled prewarm failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
	} else {
		s.logger.Info("Scheduled prewarm completed",
			zap.Duration("duration", time.Since(startTime)))
	}

	s.mu.Lock()
	s.busy = false
	s.lastRun = startTime
	s.lastErr = err
	s.mu.Unlock()
}

// Stop halts the cron loop and waits for scheduled, startup and forced runs
// to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	s.wg.Wait()
}

// ForceRun starts a prewarm outside the schedule. It is skipped if a run is
// already active.
func (s *Scheduler) ForceRun() {
	s.logger.Info("Manually triggering prewarm")
	s.runAsync()
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":  s.running,
		"busy":     s.busy,
		"spec":     s.spec,
		"last_run": s.lastRun,
		"places":   s.places,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}
	return status
}

func (s *Scheduler) UpdatePlaces(places []string) {
	s.mu.Lock()
	s.places = places
	s.mu.Unlock()

	s.logger.Info("Scheduler places updated", zap.Strings("places", places))
}
