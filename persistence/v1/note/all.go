package note

import (
	"context"
	"fmt"
	"github.com/ribgsilva/meditate/sys"
)

// All returns every note, newest first
func All(ctx context.Context) ([]Note, error) {
	db := sys.R.Database

	dbCtx, dbCancel := dbContext(ctx)
	defer dbCancel()
	rows, err := db.QueryContext(dbCtx, "SELECT id, content, tag, timestamp FROM notes ORDER BY timestamp DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]Note, 0)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.Id, &n.Content, &n.Tag, &n.Timestamp); err != nil {
			return nil, fmt.Errorf("error parsing db data: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	return notes, nil
}
