package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"beppofit/cli/internal/api"
)

// loginCmd signs in with email and password and stores the session locally.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in to your BeppoFit account",
	Long: `The login command signs you in with your email address and password and
stores the resulting session securely on this device.

Email and password can be passed via --email/--password, the
BEPPOFIT_EMAIL/BEPPOFIT_PASSWORD environment variables, or interactive
prompts. If already signed in, the new session replaces the old one.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd)
		if err != nil {
			return err
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		stop := startAreaSpinner("Signing in")
		user, err := svc.Login(cmd.Context(), email, password)
		stop()
		if err != nil {
			switch api.KindOf(err) {
			case api.KindUnknownUser:
				pterm.Error.Println("No account exists for that e-mail address.")
				pterm.Info.Println("Run 'beppofit register' to create one.")
			case api.KindInvalidCredentials:
				pterm.Error.Println("Wrong password.")
				pterm.Info.Println("Run 'beppofit forgot-password' if you can't remember it.")
			}
			return describeError(err, "logging in")
		}

		pterm.Success.Printf("Welcome back, %s!\n", user.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("email", "", "Email address (or set BEPPOFIT_EMAIL)")
	loginCmd.Flags().String("password", "", "Password (or set BEPPOFIT_PASSWORD, will prompt if not provided)")
}
