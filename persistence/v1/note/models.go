package note

import (
	"context"
	"github.com/ribgsilva/meditate/sys"
)

type Note struct {
	Id        uint64
	Content   string
	Tag       string
	Timestamp int64
}

type NewNote struct {
	Content   string
	Tag       string
	Timestamp int64
}

// dbContext bounds a single database operation by the configured timeout
func dbContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if sys.Configs.Database.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
}

// changed wakes up every live query. The write already landed, so a failure here is only logged.
func changed(ctx context.Context) {
	notifier := sys.R.Notifier
	if notifier == nil {
		return
	}

	var nCtx context.Context
	var nCancel context.CancelFunc
	if sys.Configs.Redis.OperationTimeout > 0 {
		nCtx, nCancel = context.WithTimeout(ctx, sys.Configs.Redis.OperationTimeout)
	} else {
		nCtx, nCancel = context.WithCancel(ctx)
	}
	defer nCancel()

	if err := notifier.Publish(nCtx); err != nil {
		sys.R.Log.Errorw("notes changed", "status", "failed to notify observers", "ERROR", err)
	}
}
