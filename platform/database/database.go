package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	// DriverSQLite is the embedded, pure go driver. Default for a single device.
	DriverSQLite = "sqlite"
	// DriverMySQL is used when several processes share one server database.
	DriverMySQL = "mysql"
)

// Open opens the database for driver and waits up to pingTimeout for it to answer
func Open(ctx context.Context, driver, connectionURL string, pingTimeout time.Duration) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, connectionURL)
	if err != nil {
		return nil, fmt.Errorf("error to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	return db, nil
}
