package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the account behind the restored session. It reads only
// local state; no network call is made.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in account",
	Long: `The whoami command shows the account associated with the session stored on
this device. It does not contact the backend; if the token was revoked
server-side, the next authenticated operation will detect it.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		user := svc.Sessions().User()
		if user == nil {
			fmt.Println("🔒 You're not signed in.")
			fmt.Println("   Run 'beppofit login' to get started.")
			return nil
		}

		fmt.Printf("👤 Signed in as %s\n", user.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
