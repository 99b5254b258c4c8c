package notes

import (
	"context"
	"encoding/json"
	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/sys"
	"gocloud.dev/pubsub"
)

// Consume handles note events until ctx is done, running at most maxWorkers at a time
func Consume(ctx context.Context, sub *pubsub.Subscription, maxWorkers int) error {
	logger := sys.R.Log
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	workers := make(chan int, maxWorkers)

	var err error
	for {
		var message *pubsub.Message
		message, err = sub.Receive(ctx)
		if err != nil {
			break
		}

		workers <- 1
		go func(m *pubsub.Message) {
			defer func() { <-workers }()
			defer m.Ack()

			logger.Infof("message received: %s", string(m.Body))
			handle(ctx, m.Body)
		}(message)
	}

	// wait for the running workers
	for w := 0; w < maxWorkers; w++ {
		workers <- 1
	}

	// receive fails once ctx is cancelled, that is a regular stop
	if ctx.Err() != nil {
		return nil
	}

	return err
}

func handle(ctx context.Context, body []byte) {
	logger := sys.R.Log

	var e struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		logger.Error("failed to parse body: ", err)
		return
	}

	switch e.Type {
	case note.EventCreate:
		var c note.NewNote
		if err := json.Unmarshal(e.Data, &c); err != nil {
			logger.Errorf("failed to parse create event %s: err: %s", string(e.Data), err)
			return
		}
		if _, err := note.Create(ctx, c); err != nil {
			logger.Errorf("failed to create event %+v: err: %s", c, err)
		}
	case note.EventDelete:
		var r note.Removal
		if err := json.Unmarshal(e.Data, &r); err != nil {
			logger.Errorf("failed to parse delete event %s: err: %s", string(e.Data), err)
			return
		}
		if err := note.Remove(ctx, r.Id); err != nil {
			logger.Errorf("failed to delete event %+v: err: %s", r, err)
		}
	default:
		logger.Error("unknown event type: ", e.Type)
	}
}
