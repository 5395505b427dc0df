// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the RagFlow client.
// It implements the authentication subcommands (login, register, logout,
// whoami, token) and configuration management using the Cobra CLI framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ragflow/cli/internal/backend"
	"ragflow/cli/internal/config"
	"ragflow/cli/internal/logging"
)

var (
	showVersion bool
	configPath  string
	apiURLFlag  string
	storeFlag   string
	verbose     bool

	// cfg and logger are populated by the root PersistentPreRunE.
	cfg    config.Config
	logger *pterm.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "ragflow",
	Short:         "RagFlow command-line client",
	Long:          `ragflow signs you in to a RagFlow backend and keeps the session token in your OS keychain (or a file or Redis store) between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "ragflow %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// loadSettings resolves config file, environment and flags, in that order.
func loadSettings(cmd *cobra.Command) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURLFlag != "" {
		c.APIURL = apiURLFlag
	}
	if storeFlag != "" {
		c.Store.Backend = storeFlag
	}
	if verbose {
		c.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	logger = logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	backend.UserAgent = "ragflow-cli/" + Version
	logger.Debug("settings loaded", logger.Args("api_url", cfg.APIURL, "store", cfg.Store.Backend))
	return nil
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/ragflow/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend API base URL, e.g. http://localhost:8080/api")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Token store backend: keyring, file or redis")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
}
