// Package notify fans change signals out from the writers of the notes table
// to every live query reading it.
//
// A signal carries no payload. Receivers re-read the table, so signals that pile
// up while a receiver is busy collapse into one.
package notify

import "context"

// Notifier publishes and delivers change signals.
type Notifier interface {
	// Publish signals every current subscriber that the data changed.
	Publish(ctx context.Context) error

	// Subscribe returns a channel receiving a value after each Publish.
	// The channel is closed once ctx is done.
	Subscribe(ctx context.Context) (<-chan struct{}, error)
}

// signal does a non blocking send on a one slot channel.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
