package note

import (
	"context"
	"github.com/ribgsilva/meditate/persistence/v1/note"
	"github.com/ribgsilva/meditate/platform/notify"
)

// Observe follows every change of the stored notes, newest first. See note.Observe in persistence.
func Observe(ctx context.Context) (<-chan []Note, error) {
	stored, err := note.Observe(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan []Note, 1)
	go func() {
		defer close(out)
		for snapshot := range stored {
			notes := make([]Note, len(snapshot))
			for i, n := range snapshot {
				notes[i] = Note(n)
			}
			notify.Offer(out, notes)
		}
	}()

	return out, nil
}
