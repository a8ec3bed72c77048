package cmd

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// verifyCmd redeems the verification token from the signup email.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify your email address",
	Long: `The verify command redeems the verification token from the email you
received after registering. The token is single-use and expires after 24
hours; register again with the same email to get a fresh one.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			return errors.New("a verification token is required (use --token)")
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		stop := startAreaSpinner("Verifying your email")
		status, err := svc.VerifyEmail(cmd.Context(), token)
		stop()
		if err != nil {
			return describeError(err, "verifying your email")
		}

		pterm.Success.Println(status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("token", "", "Verification token from the signup email")
}
