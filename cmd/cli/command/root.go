package command

// root.go defines the root command of the yamdb admin tool.
// Every subcommand reads the same environment configuration as the API server.

import (
	"fmt"
	"log/slog"
	"os"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var envFile string // optional .env file to load before the environment

var rootCmd = &cobra.Command{
	Use:   "yamdb",
	Short: "yamdb - YaMDb administration tool",
	Long: `yamdb manages a YaMDb deployment directly through its database:
- apply the schema
- create administrator accounts
- look up the confirmation code of an address

Use "yamdb [command] --help" to see the options of a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load variables from this file first")
}

// loadConfig reads the configuration shared with the API server.
func loadConfig() (*config.Config, *slog.Logger, error) {
	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat), nil
}

// openDB connects to the configured store without migrating it.
func openDB() (*gorm.DB, *slog.Logger, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.OpenGorm(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}
