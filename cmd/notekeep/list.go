package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
)

var (
	filterTag  string
	listFormat outputFormat
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openStore()
		if err != nil {
			return err
		}
		defer h.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		notes, err := h.ListNotes(ctx)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		notes = notekeep.FilterByTag(notes, filterTag)

		if ok, err := listFormat.write(cmd.OutOrStdout(), notes); ok {
			return err
		}

		out := cmd.OutOrStdout()
		if len(notes) == 0 && filterTag != "" {
			fmt.Fprintln(out, "No notes match the filter")
			return nil
		}
		fmt.Fprintf(out, "Your Notes (%d)\n", len(notes))
		for _, note := range notes {
			fmt.Fprintln(out, summary(note))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter notes by tag")
	listCmd.Flags().BoolVar(&listFormat.json, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listFormat.yaml, "yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
