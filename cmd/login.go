// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ragflow/cli/internal/backend"
)

var (
	loginUsername      string
	loginPasswordStdin bool
	loginForce         bool
)

// loginCmd represents the login command.
// It exchanges a username and password for a session token and stores the
// token in the configured store so later commands run authenticated.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in and store the session token",
	Long: `The login command sends your username and password to the RagFlow backend
and keeps the returned token in the configured store (OS keychain by default).

Missing values are prompted for; the password is never echoed. Use
--password-stdin to pipe the password from a secret manager. If a token is
already stored the command does nothing unless --force is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		sess, closeStore, err := openSession()
		if err != nil {
			return err
		}
		defer closeStore()

		if sess.IsAuthenticated() && !loginForce {
			pterm.Info.Println("Already logged in. Use --force to sign in again.")
			return nil
		}

		username, err := promptText("Username", loginUsername)
		if err != nil {
			return err
		}
		var password string
		if loginPasswordStdin {
			password, err = readSecretLine(cmd.InOrStdin())
		} else {
			password, err = promptSecret("Password")
		}
		if err != nil {
			return err
		}

		creds := backend.Credentials{Username: username, Password: password}
		err = withSpinner(cmd.ErrOrStderr(), "Signing in", func() error {
			return sess.Login(ctx, creds)
		})
		if err != nil {
			return presentError(err, "logging in")
		}

		pterm.Success.Printfln("Logged in as %s", sess.User().Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from standard input")
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "Sign in even when a token is already stored")
}
