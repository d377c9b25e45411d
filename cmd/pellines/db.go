package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/vangoframework/pellines/internal/config"
	"github.com/vangoframework/pellines/internal/database"
	"github.com/vangoframework/pellines/internal/database/queries"
	"github.com/vangoframework/pellines/internal/seed"
)

var seedFile string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		logger.Info("schema applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		var res seed.Result
		err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
			res, err = f.Apply(ctx, queries.New(tx))
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		logger.Info("seed applied",
			"file", seedFile,
			"contacts", res.Contacts,
			"radio_stations", res.RadioStations,
			"event_categories", res.EventCategories,
			"businesses", res.Businesses,
			"businesses_existing", res.BusinessesExists,
			"photos", res.Photos,
			"emergency_protocols", res.Protocols,
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seeds/pellines.yaml", "Seed file to load")
}

func openDatabase(ctx context.Context) (*database.DB, error) {
	url, err := config.LoadDatabaseURL()
	if err != nil {
		return nil, err
	}
	db, err := database.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
