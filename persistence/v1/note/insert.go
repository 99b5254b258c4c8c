package note

import (
	"context"
	"fmt"
	"github.com/ribgsilva/meditate/sys"
)

// Insert stores the note and returns it with the id assigned by the database
func Insert(ctx context.Context, newN NewNote) (Note, error) {
	db := sys.R.Database

	dbCtx, dbCancel := dbContext(ctx)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "INSERT INTO notes (content, tag, timestamp) VALUES (?, ?, ?)")
	if err != nil {
		return Note{}, fmt.Errorf("failed to prepare insert stmt: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(dbCtx, newN.Content, newN.Tag, newN.Timestamp)
	if err != nil {
		return Note{}, fmt.Errorf("failed to exec insert stmt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Note{}, fmt.Errorf("failed to read inserted id: %w", err)
	}

	changed(ctx)

	return Note{
		Id:        uint64(id),
		Content:   newN.Content,
		Tag:       newN.Tag,
		Timestamp: newN.Timestamp,
	}, nil
}
