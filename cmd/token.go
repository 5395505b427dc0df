package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// tokenCmd prints the raw token so scripts can present it to the API:
//
//	curl -H "Authorization: Bearer $(ragflow token)" ...
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeStore, err := openSession()
		if err != nil {
			return err
		}
		defer closeStore()

		token, ok := sess.Token()
		if !ok {
			return errors.New("not logged in; run 'ragflow login'")
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
