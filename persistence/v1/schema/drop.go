package schema

import (
	"context"
	"fmt"
	"github.com/ribgsilva/meditate/sys"
)

func Drop(ctx context.Context) error {
	db := sys.R.Database

	_, err := db.ExecContext(ctx, dropSchema)
	if err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}

	return nil
}
