package cmd

import (
	"errors"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// forgotPasswordCmd requests a password reset email. The backend answers
// identically whether or not the email has an account, so the response never
// reveals account existence.
var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	Long: `The forgot-password command asks the backend to send a password reset email.
If an account exists for the address, the email contains a single-use reset
token valid for one hour; use it with 'beppofit reset-password'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			email = os.Getenv("BEPPOFIT_EMAIL")
		}
		if email == "" {
			var err error
			email, err = promptInput("Email")
			if err != nil {
				return err
			}
		}
		if email == "" {
			return errors.New("email is required (use --email or BEPPOFIT_EMAIL)")
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		stop := startAreaSpinner("Requesting reset email")
		status, err := svc.ForgotPassword(cmd.Context(), email)
		stop()
		if err != nil {
			return describeError(err, "requesting a password reset")
		}

		pterm.Success.Println(status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forgotPasswordCmd)
	forgotPasswordCmd.Flags().String("email", "", "Email address (or set BEPPOFIT_EMAIL)")
}
