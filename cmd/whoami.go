package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// whoamiCmd shows whether a session token is stored and what it says about itself.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"status"},
	Short:   "Show the current session",
	Long: `The whoami command reports whether a session token is stored. When the
token is a JWT its subject and expiry are shown. Nothing is sent to the
backend, so a listed session may already have been revoked server-side.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeStore, err := openSession()
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		if !sess.IsAuthenticated() {
			fmt.Fprintln(out, "🔒 You're not logged in yet!")
			fmt.Fprintln(out, "   Run 'ragflow login' to get started.")
			return nil
		}

		claims, ok := sess.Claims()
		if !ok || claims.Subject == "" {
			fmt.Fprintln(out, "👤 Logged in (the token does not name its user)")
			return nil
		}
		fmt.Fprintf(out, "👤 Current user: %s\n", claims.Subject)
		if !claims.ExpiresAt.IsZero() {
			note := ""
			if claims.Expired(time.Now()) {
				note = " (expired, run 'ragflow login --force')"
			}
			fmt.Fprintf(out, "   Token expires: %s%s\n", claims.ExpiresAt.Local().Format(time.RFC1123), note)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
