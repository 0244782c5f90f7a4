package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/MinhHuy1507/agriseed/internal/iodataset"
	"github.com/MinhHuy1507/agriseed/internal/iodb"
	"github.com/MinhHuy1507/agriseed/internal/ioschema"
	"github.com/MinhHuy1507/agriseed/internal/ioseed"
	"github.com/MinhHuy1507/agriseed/pkg/agriseed"
	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/MinhHuy1507/agriseed/pkg/db"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var (
	seedDatasets    []string
	seedSkipBadRows bool
	seedBatchSize   int
	seedTimeout     time.Duration
)

func getSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load datasets into the database",
		Long: `Load the configured datasets into the agriculture statistics
database.

This command:
  1. Connects to PostgreSQL and takes the run lock (one seeding run
     per database at a time)
  2. Makes sure the schema is current via GORM AutoMigrate
  3. Upserts the 63-province reference table
  4. Loads every dataset from datasets.yaml through batched upserts
     keyed on (province, year, metric)
  5. Records the run in the load_runs table

Seeding is idempotent: running twice on identical input yields the
same table state as running once. Interrupting a run keeps all
committed batches; re-running resumes the remaining work.

Examples:
  agriseed seed
  agriseed seed --datasets agriculture,climate
  agriseed seed --skip-bad-rows
  agriseed seed --timeout 30m`,
		RunE: runSeed,
	}

	cmd.Flags().StringSliceVar(&seedDatasets, "datasets", nil,
		"comma-separated dataset names to seed (default: all)")
	cmd.Flags().BoolVar(&seedSkipBadRows, "skip-bad-rows", false,
		"skip rows that fail validation instead of aborting")
	cmd.Flags().IntVar(&seedBatchSize, "batch-size", 0,
		"records committed per transaction (default from config)")
	cmd.Flags().DurationVar(&seedTimeout, "timeout", 0,
		"ceiling for the whole run, e.g. 30m (default from config)")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Ctrl-C cancels the run; the seeder marks it failed and releases
	// the run lock before exiting.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := getConfig()
	cfg.Update(seedOptions(cmd))

	var op db.Operator = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	fmt.Printf("Connected to database: %s@%s:%d/%s\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Database)

	// The schema has to exist before seeding; AutoMigrate is a no-op
	// when it is already current.
	var sm agriseed.SchemaManager = ioschema.NewManager(op)
	if err := sm.Migrate(ctx); err != nil {
		return err
	}

	seeder := ioseed.New(
		*cfg,
		op.Pool(),
		iodataset.NewManifest(cfg),
		iodataset.NewOpener(),
		clockwork.NewRealClock(),
	)

	_, err := seeder.Seed(ctx)
	return err
}

// seedOptions converts the seed command flags into config options,
// keeping flag > env > file > default precedence.
func seedOptions(cmd *cobra.Command) []config.Option {
	var opts []config.Option

	if cmd.Flags().Changed("datasets") {
		opts = append(opts, config.OptSeedDatasets(seedDatasets))
	}
	if seedSkipBadRows {
		opts = append(opts, config.OptSeedOnBadRow(config.BadRowSkip))
	}
	if cmd.Flags().Changed("batch-size") {
		opts = append(opts, config.OptSeedBatchSize(seedBatchSize))
	}
	if cmd.Flags().Changed("timeout") {
		opts = append(opts, config.OptSeedTimeout(seedTimeout))
	}

	return opts
}
