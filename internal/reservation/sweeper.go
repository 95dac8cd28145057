package reservation

import (
	"context"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

// Sweep removes expired holds and announces the seats they freed.
func (c *Coordinator) Sweep(ctx context.Context) ([]domain.Hold, error) {
	expired, err := c.holds.SweepExpired(ctx)

	for _, hold := range expired {
		c.metrics.holdsExpired.Add(ctx, 1, scheduleAttr(hold.ScheduleID))

		if len(hold.SeatIDs) == 0 {
			continue
		}

		c.broadcast(ctx, domain.SeatEvent{
			Type:       domain.EventSeatsUnlocked,
			ScheduleID: hold.ScheduleID,
			SeatIDs:    hold.SeatIDs,
			SessionID:  hold.HolderRef(),
			Timestamp:  c.now(),
		})
	}

	return expired, err
}

// RunSweeper calls Sweep every interval until ctx is done. Failed sweeps are
// logged and retried on the next tick.
func (c *Coordinator) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("hold sweeper started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("hold sweeper stopped")
			return
		case <-ticker.C:
			expired, err := c.Sweep(ctx)
			if err != nil {
				c.logger.Error("failed to sweep expired holds", "error", err)
			}

			if len(expired) > 0 {
				c.logger.Debug("swept expired holds", "count", len(expired))
			}
		}
	}
}
