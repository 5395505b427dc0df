package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ragflow/cli/internal/config"
	"ragflow/cli/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := cfg
		shown.Store.RedisURL = logging.Mask(shown.Store.RedisURL)
		b, err := yaml.Marshal(shown)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Keys: api_url, timeout, log_level, store.backend, store.redis_url.
Environment variables and flags still take precedence at run time.`,
	Args: cobra.ExactArgs(2),
	// skip root settings validation so an invalid value can be corrected
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("not saved: %w", err)
		}
		if err := config.Save(configPath, c); err != nil {
			return err
		}
		pterm.Success.Printfln("%s set to %s", args[0], logging.Mask(args[1]))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
