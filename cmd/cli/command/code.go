package command

import (
	"fmt"
	"strings"

	"yamdb/internal/middleware/auth"

	"github.com/spf13/cobra"
)

var codeCmd = &cobra.Command{
	Use:   "code [email]",
	Short: "Print the confirmation code of an email address",
	Long:  `Print the code that POST /auth/email/ would send to the address, for support cases where mail was lost.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])
		if email == "" {
			return fmt.Errorf("email must not be blank")
		}
		fmt.Fprintln(cmd.OutOrStdout(), auth.ConfirmationCode(email))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codeCmd)
}
