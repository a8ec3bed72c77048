package cmd

import (
	"errors"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"beppofit/cli/internal/api"
	"beppofit/cli/internal/httperrors"
)

// registerCmd creates a new BeppoFit account and signs the user in.
// The backend treats a repeated registration for a still-unverified email as
// a resend of the verification email, so running this twice is safe.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a BeppoFit account and sign in",
	Long: `The register command creates a new BeppoFit account with an email address
and password, signs you in, and sends a verification email.

If the email already belongs to an unverified account, the verification email
is re-sent and you are signed in as usual. Email and password can be passed
via --email/--password, the BEPPOFIT_EMAIL/BEPPOFIT_PASSWORD environment
variables, or interactive prompts.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd)
		if err != nil {
			return err
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		stop := startAreaSpinner("Creating your account")
		user, err := svc.Register(cmd.Context(), email, password)
		stop()
		if err != nil {
			return describeError(err, "registering")
		}

		pterm.Success.Printf("Account ready! Signed in as %s\n", user.Email)
		if !user.IsVerified {
			pterm.Info.Println("Check your inbox for a verification email.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().String("email", "", "Email address (or set BEPPOFIT_EMAIL)")
	registerCmd.Flags().String("password", "", "Password (or set BEPPOFIT_PASSWORD, will prompt if not provided)")
}

// credentials resolves email and password from flags, environment, or prompts.
func credentials(cmd *cobra.Command) (email, password string, err error) {
	email, _ = cmd.Flags().GetString("email")
	password, _ = cmd.Flags().GetString("password")

	if email == "" {
		email = os.Getenv("BEPPOFIT_EMAIL")
	}
	if password == "" {
		password = os.Getenv("BEPPOFIT_PASSWORD")
	}

	if email == "" {
		email, err = promptInput("Email")
		if err != nil {
			return "", "", err
		}
	}
	if email == "" {
		return "", "", errors.New("email is required (use --email or BEPPOFIT_EMAIL)")
	}
	if password == "" {
		password, err = promptPassword("Password")
		if err != nil {
			return "", "", err
		}
	}
	return email, password, nil
}

// describeError presents network failures in a friendly form and passes other
// errors through for the root command to print.
func describeError(err error, context string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindServer && apiErr.Err != nil {
		return httperrors.FormatNetworkError(apiErr.Err, context)
	}
	return err
}
