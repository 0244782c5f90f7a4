package main

import (
	"fmt"
	"os"

	"github.com/MinhHuy1507/agriseed/internal/ioconfig"
	"github.com/MinhHuy1507/agriseed/internal/iofs"
	"github.com/MinhHuy1507/agriseed/internal/iologger"
	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agriseed",
		Short: "agriseed manages the agriculture statistics database",
		Long: `agriseed manages the lifecycle of the provincial agriculture
statistics PostgreSQL database, from schema creation through dataset
seeding and verification.

The tool provides three main phases:
  - create: Create the database schema
  - seed:   Load datasets into the database (idempotent)
  - verify: Check database consistency after seeding

Configuration precedence (highest to lowest):
  1. CLI flags (--datasets, --batch-size, etc.)
  2. Environment variables (AGRISEED_*)
  3. Config file (~/.config/agriseed/config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via AGRISEED_* environment variables.
  Nested fields use underscores (database.host → AGRISEED_DATABASE_HOST).

  Examples:
    AGRISEED_DATABASE_HOST          PostgreSQL host
    AGRISEED_DATABASE_PORT          PostgreSQL port
    AGRISEED_DATABASE_USER          PostgreSQL user
    AGRISEED_DATABASE_PASSWORD      PostgreSQL password
    AGRISEED_DATABASE_DATABASE      Database name
    AGRISEED_SEED_BATCH_SIZE        Upsert batch size
    AGRISEED_LOG_LEVEL              Log level (debug/info/warn/error)

  See 'go doc github.com/MinhHuy1507/agriseed/pkg/config' for the
  complete list.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("cannot determine home directory: %w", err)
			}

			// First run creates the config/data/log directories and drops
			// in the default config.yaml and datasets.yaml.
			if err := iofs.EnsureDirs(homeDir); err != nil {
				return err
			}
			if err := iofs.EnsureConfigFile(homeDir); err != nil {
				return err
			}
			if err := iofs.EnsureDatasetsFile(homeDir); err != nil {
				return err
			}

			result, err := ioconfig.Load(cfgFile, homeDir)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			if err := iologger.Init(
				config.LogDir(homeDir), cfg.Log, false,
			); err != nil {
				return err
			}

			switch result.Source {
			case "file":
				fmt.Printf("Using config from: %s\n", result.SourcePath)
			case "defaults+env":
				fmt.Println(
					"Using built-in defaults with environment variable overrides")
			case "defaults":
				fmt.Println("Using built-in defaults (no config file)")
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/agriseed/config.yaml)")

	rootCmd.Flags().BoolP("version", "V", false, "version for agriseed")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getSeedCmd())
	rootCmd.AddCommand(getVerifyCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *config.Config {
	return cfg
}
