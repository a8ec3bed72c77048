package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd clears the locally stored session. It is purely local teardown:
// the backend issues stateless bearer tokens and holds no session to revoke.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	Long: `The logout command removes the stored session from this device: the bearer
token and the cached account record. It succeeds whether or not you are
currently signed in.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if err := svc.Logout(); err != nil {
			return err
		}
		pterm.Success.Println("Signed out. Session removed from this device.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
