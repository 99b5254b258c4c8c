package note

import (
	"context"
	"github.com/ribgsilva/meditate/persistence/v1/note"
)

func Remove(ctx context.Context, id uint64) error {
	return note.Delete(ctx, id)
}
