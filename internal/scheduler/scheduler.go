package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"dealertrack/internal/runs"
)

// Service drops expired processing runs on a cron schedule so the
// in-memory run store does not grow without bound.
type Service struct {
	cronRunner *cron.Cron
	runStore   *runs.Store
	schedule   string
	retention  time.Duration
}

func NewService(runStore *runs.Store, schedule string, retention time.Duration) *Service {
	return &Service{
		cronRunner: cron.New(
			cron.WithChain(
				cron.SkipIfStillRunning(cron.DefaultLogger),
				cron.Recover(cron.DefaultLogger),
			),
		),
		runStore:  runStore,
		schedule:  schedule,
		retention: retention,
	}
}

// Start registers the purge job and starts the cron runner.
func (s *Service) Start() error {
	entryID, err := s.cronRunner.AddFunc(s.schedule, s.purgeExpiredRuns)
	if err != nil {
		return fmt.Errorf("failed to schedule run purge with cron '%s': %w", s.schedule, err)
	}
	s.cronRunner.Start()
	log.Printf("Run purge scheduled (EntryID: %d, Cron: '%s', Retention: %s)", entryID, s.schedule, s.retention)
	return nil
}

func (s *Service) purgeExpiredRuns() {
	purged := s.runStore.PurgeOlderThan(s.retention)
	if purged > 0 {
		log.Printf("Purged %d expired processing run(s)", purged)
	}
}

// Stop halts the cron runner and waits for a running purge to finish.
func (s *Service) Stop() {
	ctx := s.cronRunner.Stop()
	<-ctx.Done()
	log.Println("Run purge scheduler stopped.")
}
