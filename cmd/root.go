// Package cmd provides the command-line interface for the BeppoFit CLI.
// It implements subcommands for account registration, login, logout, email
// verification, password reset, third-party login, and account management
// using the Cobra CLI framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"beppofit/cli/internal/api"
	"beppofit/cli/internal/auth"
	"beppofit/cli/internal/config"
	"beppofit/cli/internal/logging"
	"beppofit/cli/internal/session"
	"beppofit/cli/internal/xdg"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "beppofit",
	Short:         "BeppoFit CLI for managing your account and session",
	Long:          `BeppoFit is a command-line client for the BeppoFit service. It manages your authenticated session locally and talks to the BeppoFit identity backend for registration, login, email verification, password reset, and account management.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("beppofit %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
}

// newService wires the full auth stack for a command invocation: config,
// session store, restored session controller, protocol client, service.
func newService() (*auth.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	sessions := session.NewController(store)
	sessions.Restore()
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	return auth.NewService(client, sessions), nil
}

// newStore selects the session store backend from config. When the OS
// keychain is unavailable the file store is used so the CLI stays usable.
func newStore(cfg config.Config) (session.Store, error) {
	if cfg.SessionStore == config.StoreFile {
		return newFileStore()
	}
	ks, err := session.NewKeychainStore()
	if err != nil {
		logging.Debug.Debug().Err(err).Msg("keychain unavailable, falling back to file store")
		return newFileStore()
	}
	return ks, nil
}

func newFileStore() (session.Store, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(dir), nil
}
