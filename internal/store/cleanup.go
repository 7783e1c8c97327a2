package store

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jayjaychukwu/reconcilation/pkg/constants"
)

// Cleaner periodically removes job records older than the retention
// window, along with their uploaded files.
type Cleaner struct {
	store     *Store
	files     *Files
	retention time.Duration
	logger    *zerolog.Logger
	cron      *cron.Cron
}

// NewCleaner builds a retention cleaner; Start must be called to begin
// the schedule.
func NewCleaner(s *Store, files *Files, retention time.Duration, logger *zerolog.Logger) *Cleaner {
	return &Cleaner{
		store:     s,
		files:     files,
		retention: retention,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start registers the sweep on the cron schedule and starts it.
func (c *Cleaner) Start() error {
	_, err := c.cron.AddFunc(constants.CleanupSchedule, func() {
		c.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	c.cron.Start()
	c.logger.Info().
		Str("schedule", constants.CleanupSchedule).
		Dur("retention", c.retention).
		Msg("retention cleanup scheduled")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (c *Cleaner) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

// Sweep deletes expired records and their files once. It returns the
// number of records removed.
func (c *Cleaner) Sweep(ctx context.Context) int {
	cutoff := time.Now().Add(-c.retention)
	old, err := c.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		c.logger.Error().Err(err).Msg("retention sweep failed")
		return 0
	}

	for _, rec := range old {
		for _, path := range []string{rec.SourceFile, rec.TargetFile} {
			if err := c.files.Remove(path); err != nil {
				c.logger.Warn().Err(err).Str("task_id", rec.TaskID).Msg("failed to remove uploaded file")
			}
		}
	}

	if len(old) > 0 {
		c.logger.Info().
			Int("records", len(old)).
			Time("cutoff", cutoff).
			Msg("retention sweep removed expired jobs")
	}
	return len(old)
}
