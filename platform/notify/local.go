package notify

import (
	"context"
	"sync"
)

// Local delivers signals between goroutines of the same process.
type Local struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewLocal creates an in process notifier
func NewLocal() *Local {
	return &Local{subs: make(map[chan struct{}]struct{})}
}

func (l *Local) Publish(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.subs {
		signal(ch)
	}
	return nil
}

func (l *Local) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := make(chan struct{}, 1)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		delete(l.subs, ch)
		close(ch)
		l.mu.Unlock()
	}()

	return ch, nil
}

// Subscribers reports how many subscriptions are still attached
func (l *Local) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
