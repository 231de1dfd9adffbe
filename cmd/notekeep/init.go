package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a note store",
	Long:  `Create the .notekeep directory (and database files, for badger and sqlite) in the store directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		if err := h.Close(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty note store in", storeDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
