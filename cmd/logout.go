// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing authentication state.
// It removes the stored token locally; the backend is not contacted.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	Long: `The logout command forgets the current session: the token is removed from
the configured store. No request is sent to the backend, so the token itself
stays valid on the server until it expires.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeStore, err := openSession()
		if err != nil {
			return err
		}
		defer closeStore()

		if sess.IsAuthenticated() {
			pterm.Success.Println("Logged out")
		} else {
			pterm.Info.Println("No session was stored")
		}
		sess.Logout()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
