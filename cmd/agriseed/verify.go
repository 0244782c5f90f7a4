package main

import (
	"context"
	"fmt"

	"github.com/MinhHuy1507/agriseed/internal/iodb"
	"github.com/MinhHuy1507/agriseed/internal/ioverify"
	"github.com/MinhHuy1507/agriseed/pkg/agriseed"
	"github.com/MinhHuy1507/agriseed/pkg/db"
	"github.com/spf13/cobra"
)

func getVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check database consistency after seeding",
		Long: `Run consistency checks against the seeded database.

This command:
  1. Counts provinces, observations and load runs
  2. Checks that (province, year, metric) keys are unique
  3. Checks that every observation references a known province
  4. Reports the outcome of the most recent load run

A non-zero exit code means at least one check failed.

Examples:
  agriseed verify`,
		RunE: runVerify,
	}

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	fmt.Printf("Connected to database: %s@%s:%d/%s\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Database)

	var v agriseed.Verifier = ioverify.New(op.Pool())
	return v.Verify(ctx)
}
