package cmd

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resetPasswordCmd redeems a reset token with a new password.
var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with a reset token",
	Long: `The reset-password command sets a new password using the single-use token
from a password reset email (see 'beppofit forgot-password'). After a
successful reset, sign in with 'beppofit login'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			return errors.New("a reset token is required (use --token)")
		}

		newPassword, _ := cmd.Flags().GetString("new-password")
		if newPassword == "" {
			var err error
			newPassword, err = promptPassword("New password")
			if err != nil {
				return err
			}
		}
		if newPassword == "" {
			return errors.New("a new password is required")
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		stop := startAreaSpinner("Resetting your password")
		status, err := svc.ResetPassword(cmd.Context(), token, newPassword)
		stop()
		if err != nil {
			return describeError(err, "resetting your password")
		}

		pterm.Success.Println(status)
		pterm.Info.Println("Sign in with your new password: beppofit login")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetPasswordCmd)
	resetPasswordCmd.Flags().String("token", "", "Reset token from the password reset email")
	resetPasswordCmd.Flags().String("new-password", "", "New password (will prompt if not provided)")
}
