package schema

import (
	"context"
	"fmt"
	"github.com/ribgsilva/meditate/persistence/v1/schema"
	"github.com/ribgsilva/meditate/platform/database"
	"github.com/ribgsilva/meditate/platform/env"
	"github.com/ribgsilva/meditate/sys"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command groups the schema commands
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the notes schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Creates the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(func(ctx context.Context) error {
				cmd.Println("creating schema")
				if err := schema.Create(ctx); err != nil {
					return fmt.Errorf("failed to create schema: %w", err)
				}
				cmd.Println("created schema")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Deletes the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(func(ctx context.Context) error {
				cmd.Println("deleting schema")
				if err := schema.Drop(ctx); err != nil {
					return fmt.Errorf("failed to delete schema: %w", err)
				}
				cmd.Println("deleted schema")
				return nil
			})
		},
	})

	return cmd
}

func withDatabase(run func(ctx context.Context) error) error {
	// empty logger
	log := zap.NewNop().Sugar()
	sys.R.Log = log

	sys.Configs.Database.Driver = env.OrDefault(log, "DATABASE_DRIVER", database.DriverSQLite)
	sys.Configs.Database.ConnectionURL = env.OrDefault(log, "DATABASE_CONNECTION_URL", "file:notes.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	sys.Configs.Database.PingTimeout = env.DurationDefault(log, "DATABASE_PING_TIMEOUT", "2s")
	sys.Configs.Database.OperationTimeout = env.DurationDefault(log, "DATABASE_OPERATION_TIMEOUT", "5s")

	db, err := database.Open(context.Background(), sys.Configs.Database.Driver, sys.Configs.Database.ConnectionURL, sys.Configs.Database.PingTimeout)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	sys.R.Database = db

	return run(context.Background())
}
