package note

import (
	"context"
	"github.com/ribgsilva/meditate/persistence/v1/note"
	"time"
)

// Create stores the note, stamping it with the current time when it carries none
func Create(ctx context.Context, newN NewNote) (Note, error) {
	if newN.Timestamp == 0 {
		newN.Timestamp = time.Now().UnixMilli()
	}
	created, err := note.Insert(ctx, note.NewNote(newN))
	if err != nil {
		return Note{}, err
	}
	return Note(created), nil
}
