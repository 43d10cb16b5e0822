package command

import (
	"context"
	"fmt"
	"time"

	"yamdb/database"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

var (
	superuserEmail    string
	superuserPassword string
	superuserUsername string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an administrator account",
	Long:  `Create an account with the admin role. It signs in at /auth/token/ with its email and password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db, log); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		users := service.NewUserService(repository.NewUserRepository(db), nil, log)
		user, err := users.CreateSuperuser(ctx, superuserEmail, superuserPassword, superuserUsername)
		if err != nil {
			return fmt.Errorf("failed to create superuser: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Superuser created successfully!")
		fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", user.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Email: %s\n", user.Email)
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "administrator email (required)")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "administrator password (required)")
	createSuperuserCmd.Flags().StringVar(&superuserUsername, "username", "", "optional username")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createSuperuserCmd)
}
