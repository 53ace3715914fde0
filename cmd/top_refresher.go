package main

import (
	"context"
	"time"

	"societyBack/internal/services"
)

const topRefreshTimeout = 30 * time.Second

// startTopRefresher rebuilds the cached top listings every interval until ctx
// ends.
func startTopRefresher(ctx context.Context, svc *services.TopService, interval time.Duration, log services.Logger) {
	if svc == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, topRefreshTimeout)
			defer cancel()

			dropped, err := svc.Refresh(runCtx)
			if err != nil {
				log.Errorf("top refresher: %v", err)
				return
			}
			if dropped > 0 {
				log.Infof("top refresher: rebuilt listings, %d stale keys dropped", dropped)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
