package boost

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// timeNow is swappable in tests.
var timeNow = time.Now

// Sweeper runs the boost expiry pass on a schedule.
type Sweeper struct {
	Service *Service
	cron    *cron.Cron
}

// Start schedules the expiry pass every minute. Call Stop on shutdown.
func (sw *Sweeper) Start() error {
	sw.cron = cron.New()
	_, err := sw.cron.AddFunc("@every 1m", func() {
		if _, err := sw.Service.ExpireDue(context.Background(), timeNow()); err != nil {
			log.Error().Err(err).Msg("Boost expiry sweep failed")
		}
	})
	if err != nil {
		return err
	}
	sw.cron.Start()
	return nil
}

// Stop halts the schedule; a running sweep finishes first.
func (sw *Sweeper) Stop() {
	if sw.cron != nil {
		sw.cron.Stop()
	}
}
