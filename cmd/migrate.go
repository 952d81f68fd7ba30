package cmd

import (
	"fmt"
	"strconv"

	"student-records-api/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|version N]",
	Short: "Apply or roll back the embedded schema migrations",
	Long: `Migrate the relational schema using the migrations embedded for the configured driver.

  up          apply every pending migration (default)
  down        roll back every migration
  version N   migrate up or down to version N`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	target, err := migrationTarget(args)
	if err != nil {
		return err
	}
	return database.Migrate(cmd.Context(), logger, cfg.DBDriver, cfg.DatabaseURL, target)
}

// migrationTarget maps the command arguments onto database.Migrate's
// targetVersion convention.
func migrationTarget(args []string) (int, error) {
	if len(args) == 0 {
		return -1, nil
	}

	switch args[0] {
	case "up":
		if len(args) > 1 {
			return 0, fmt.Errorf("up takes no arguments")
		}
		return -1, nil
	case "down":
		if len(args) > 1 {
			return 0, fmt.Errorf("down takes no arguments")
		}
		return 0, nil
	case "version":
		if len(args) != 2 {
			return 0, fmt.Errorf("version requires a target version number")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("invalid version %q: must be a positive integer", args[1])
		}
		return v, nil
	default:
		return 0, fmt.Errorf("unknown migrate action %q: use up, down or version N", args[0])
	}
}
