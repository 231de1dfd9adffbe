package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete a note by its ID. Deleting a note that does not exist succeeds.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		h, err := openStore()
		if err != nil {
			return err
		}
		defer h.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := h.DeleteNote(ctx, id); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
