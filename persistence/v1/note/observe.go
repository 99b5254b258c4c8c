package note

import (
	"context"
	"fmt"
	"github.com/ribgsilva/meditate/platform/notify"
	"github.com/ribgsilva/meditate/sys"
	"time"
)

// RefreshRetry is how long a live query waits before reading again after a failed refresh
var RefreshRetry = 200 * time.Millisecond

// Observe is a live query over All. The returned channel holds the current
// snapshot right away and a fresh one after every change signal. A reader that
// falls behind only gets the latest snapshot. The channel is closed when ctx is done.
func Observe(ctx context.Context) (<-chan []Note, error) {
	logger := sys.R.Log

	obsCtx, obsCancel := context.WithCancel(ctx)

	// subscribe before the first read, so a change landing in between is not lost
	changes, err := sys.R.Notifier.Subscribe(obsCtx)
	if err != nil {
		obsCancel()
		return nil, fmt.Errorf("failed to subscribe to note changes: %w", err)
	}

	first, err := All(obsCtx)
	if err != nil {
		obsCancel()
		return nil, err
	}

	out := make(chan []Note, 1)
	out <- first

	go func() {
		defer close(out)
		defer obsCancel()

		// armed while a refresh is owed after a failed read
		var retry <-chan time.Time
		for {
			select {
			case <-obsCtx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
			case <-retry:
			}
			retry = nil

			notes, err := All(obsCtx)
			if err != nil {
				if obsCtx.Err() != nil {
					return
				}
				logger.Errorw("observe notes", "status", "failed to refresh snapshot", "retryIn", RefreshRetry, "ERROR", err)
				retry = time.After(RefreshRetry)
				continue
			}
			notify.Offer(out, notes)
		}
	}()

	return out, nil
}
