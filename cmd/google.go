package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// googleCmd runs the third-party login flow. The browser completes the
// provider round trip; the backend then redirects to a callback URL carrying
// the issued token, which the user pastes back into the CLI.
var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with your Google account",
	Long: `The google command starts a Google sign-in in your browser. After you
approve, the backend redirects to a callback URL that carries your session
token. Paste that URL (or just the token) back here to finish signing in.

The command opens your default browser automatically on Windows, macOS, and
Linux, and also prints the link in case that fails.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		authURL := svc.GoogleLoginURL()
		fmt.Println("Open this link to sign in with Google:")
		fmt.Printf("%s\n\n", authURL)
		openBrowser(authURL)

		callback, err := promptInput("Paste the redirect URL (or token) here")
		if err != nil {
			return err
		}

		user, err := svc.CompleteOAuthCallback(callback)
		if err != nil {
			return describeError(err, "completing Google sign-in")
		}

		if user.Email != "" {
			pterm.Success.Printf("Signed in with Google as %s\n", user.Email)
		} else {
			pterm.Success.Println("Signed in with Google.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(googleCmd)
}

// openBrowser attempts to open the provided URL in the user's default browser.
// It starts the browser process but does not wait for it to complete.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
