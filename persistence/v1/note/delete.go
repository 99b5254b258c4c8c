package note

import (
	"context"
	"fmt"
	"math"
	"github.com/ribgsilva/meditate/sys"
)

// Delete removes the note with the given id. Deleting a missing id is a no-op.
func Delete(ctx context.Context, id uint64) error {
	// database/sql cannot bind ids above MaxInt64 and the autoincrement never hands them out
	if id > math.MaxInt64 {
		return nil
	}

	db := sys.R.Database

	dbCtx, dbCancel := dbContext(ctx)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "DELETE FROM notes WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare delete stmt: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(dbCtx, id)
	if err != nil {
		return fmt.Errorf("failed to exec delete stmt: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	changed(ctx)
	return nil
}
