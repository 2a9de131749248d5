package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/config"
	pkgConfig "github.com/wekeepgrowing/toptex-catalog-sync/pkg/config"
)

var (
	cfgFile   string
	cfg       *config.Config
	overrides = pkgConfig.NewOverrides(config.EnvPrefix)
)

var rootCmd = &cobra.Command{
	Use:   "catalog-sync",
	Short: "Synchronize the TopTex catalog into the local product database",
	Long: `catalog-sync imports the TopTex product catalog, reconciles brands,
attributes and variants by external id and manages customer specific prices.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// a missing .env file is fine
		_ = godotenv.Load()

		if err := overrides.Watch(config.OverrideKeys...); err != nil {
			return err
		}

		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg.ApplyOverrides(overrides)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $CONFIG_PATH or "+config.DefaultConfigPath+")")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("database-driver", "", "database driver (postgres or sqlite)")
	flags.String("database-path", "", "sqlite database file")

	mustBind("log.level", "log-level")
	mustBind("database.driver", "database-driver")
	mustBind("database.path", "database-path")

	rootCmd.AddCommand(
		newImportCmd(),
		newSyncCmd(),
		newPriceCmd(),
		newCustomerCmd(),
		newMigrateCmd(),
		newServeCmd(),
		newEventsCmd(),
	)
}

func mustBind(key, flag string) {
	if err := overrides.BindFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
