package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"equipment_management/internal/domain"
)

var seedUserCmd = &cobra.Command{
	Use:   "seed-user <username> <password>",
	Short: "Create an operator account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password := args[0], args[1]

		d, err := openDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		role, _ := cmd.Flags().GetString("role")
		email, _ := cmd.Flags().GetString("email")
		u := &domain.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         &role,
		}
		if email != "" {
			u.Email = &email
		}
		if err := d.users.Create(context.Background(), u); err != nil {
			return err
		}

		fmt.Printf("Created user %s (id %d)\n", u.Username, u.ID)
		return nil
	},
}

func init() {
	seedUserCmd.Flags().String("role", "engineer", "account role")
	seedUserCmd.Flags().String("email", "", "contact email")
}
