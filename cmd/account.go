package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"beppofit/cli/internal/auth"
	"beppofit/cli/internal/guard"
)

// accountSvc is wired by the account command's guard check and shared with
// its subcommands within one invocation.
var accountSvc *auth.Service

// accountCmd is the protected account area. Entry is gated on live session
// state; anonymous callers are pointed at login instead.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show and manage your account (requires sign-in)",
	Long: `The account command shows the account behind the current session. Its
subcommands manage the account itself, including permanent deletion.

All account commands require an active session.`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		accountSvc = svc
		return guard.Require(guard.New(svc.Sessions()))(cmd, args)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		user := accountSvc.Sessions().User()
		fmt.Printf("Email:     %s\n", user.Email)
		fmt.Printf("User ID:   %s\n", user.ID)
		if user.IsVerified {
			fmt.Println("Verified:  yes")
		} else {
			fmt.Println("Verified:  no (check your inbox)")
		}
		if user.GoogleID != nil {
			fmt.Println("Google:    linked")
		}
		return nil
	},
}

// accountDeleteCmd permanently deletes the account and tears down the session.
var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete your account",
	Long: `The delete command permanently deletes your BeppoFit account on the backend
and removes the session from this device. This action cannot be undone.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("Delete your account permanently? This cannot be undone.") {
			fmt.Println("Aborted.")
			return nil
		}

		stop := startAreaSpinner("Deleting your account")
		err := accountSvc.DeleteAccount(cmd.Context())
		stop()
		if err != nil {
			return describeError(err, "deleting your account")
		}

		pterm.Success.Println("Account deleted. You have been signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountDeleteCmd)
	accountDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
