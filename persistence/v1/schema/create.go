package schema

import (
	"context"
	"fmt"
	"github.com/ribgsilva/meditate/sys"
)

// Create creates the notes table for the configured driver. It is safe to run on an existing schema.
func Create(ctx context.Context) error {
	db := sys.R.Database

	statements, ok := schemas[sys.Configs.Database.Driver]
	if !ok {
		return fmt.Errorf("create schema: unsupported driver %q", sys.Configs.Database.Driver)
	}

	for _, s := range statements {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return nil
}
