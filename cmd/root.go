package cmd

import (
	"fmt"
	"os"

	"student-records-api/config"
	"student-records-api/utils"

	gokitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg holds the configuration resolved from .env, environment and flags.
var cfg *config.Config

// logger is built once the log level is known.
var logger gokitlog.Logger = gokitlog.NewNopLogger()

// rootCmd is the command-line entrypoint for all other commands. Running it
// without a subcommand starts the API server.
var rootCmd = &cobra.Command{
	Use:               "student-records",
	Short:             "Student records API: students, courses, grades and grade simulations.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("env-file", ".env", "Path to an optional .env file")
	flags.String("db-driver", "", "Relational driver: postgres or mysql (env DB_DRIVER)")
	flags.String("database-url", "", "Connection string for the relational store (env DATABASE_URL)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")

	bindFlag("db_driver", "db-driver")
	bindFlag("database_url", "database-url")
	bindFlag("log_level", "log-level")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
	}
}

// loadConfig merges .env, environment and flags into cfg.
func loadConfig(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadEnv(envFile); err != nil {
		return err
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = loaded
	logger = utils.NewLogger(os.Stdout, cfg.LogLevel)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
