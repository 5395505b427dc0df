// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ragflow/cli/internal/backend"
)

var (
	registerUsername      string
	registerEmail         string
	registerPasswordStdin bool
)

// registerCmd creates a new account. It never signs in.
var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create a new account",
	Long: `The register command creates an account on the RagFlow backend.
It does not sign you in; run 'ragflow login' afterwards.

The password is prompted for twice unless --password-stdin is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		username, err := promptText("Username", registerUsername)
		if err != nil {
			return err
		}

		var password string
		if registerPasswordStdin {
			password, err = readSecretLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
		} else {
			password, err = promptSecret("Password")
			if err != nil {
				return err
			}
			confirm, err := promptSecret("Repeat password")
			if err != nil {
				return err
			}
			if confirm != password {
				return errors.New("passwords do not match")
			}
		}

		sess, closeStore, err := openSession()
		if err != nil {
			return err
		}
		defer closeStore()

		reg := backend.Registration{Username: username, Password: password, Email: registerEmail}
		err = withSpinner(cmd.ErrOrStderr(), "Creating account", func() error {
			return sess.Register(ctx, reg)
		})
		if err != nil {
			return presentError(err, "registering")
		}

		pterm.Success.Printfln("Account %s created. Run 'ragflow login' to sign in.", username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Account username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Contact email (optional)")
	registerCmd.Flags().BoolVar(&registerPasswordStdin, "password-stdin", false, "Read the password from standard input")
}
