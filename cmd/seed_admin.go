package cmd

import (
	"errors"
	"fmt"

	models "student-records-api/app/models/postgresql"
	repository "student-records-api/app/repository/postgresql"
	"student-records-api/database"
	"student-records-api/utils"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create a user that can log in to the API",
	RunE:  runSeedAdmin,
}

func init() {
	seedAdminCmd.Flags().String("username", "", "Username for the new account")
	seedAdminCmd.Flags().String("password", "", "Password for the new account")
	seedAdminCmd.Flags().String("email", "", "Optional email address")
	_ = seedAdminCmd.MarkFlagRequired("username")
	_ = seedAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(seedAdminCmd)
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	email, _ := cmd.Flags().GetString("email")

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	db, err := database.Open(cmd.Context(), cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	user := models.User{Username: username, PasswordHash: hash}
	if email != "" {
		user.Email = &email
	}

	id, err := repository.NewUserRepository(db).Create(cmd.Context(), user)
	if errors.Is(err, database.ErrDuplicate) {
		return fmt.Errorf("user %q already exists", username)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	level.Info(logger).Log("msg", "user created", "id", id, "username", username)
	return nil
}
