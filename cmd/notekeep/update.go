package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
)

var (
	updateTitle     string
	updateBody      string
	updateTags      string
	updateArchived  bool
	updateIfVersion int64
	updateFormat    outputFormat
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a note",
	Long: `Update a note. Flags that are not given keep the current value.
With --if-version the update is rejected when the note changed in between.`,
	Args: cobra.ExactArgs(1),
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
		current, err := h.GetNote(ctx, id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		in := notekeep.UpdateInput{
			Title:     current.Title,
			Body:      current.Body,
			Tags:      current.Tags,
			IfVersion: current.Version,
		}
		if flags.Changed("title") {
			in.Title = updateTitle
		}
		if flags.Changed("body") {
			in.Body = updateBody
		}
		if flags.Changed("tags") {
			in.Tags = parseTags(updateTags)
		}
		if flags.Changed("archived") {
			in.Archived = &updateArchived
		}
		if flags.Changed("if-version") {
			in.IfVersion = updateIfVersion
		}

		note, err := h.UpdateNote(ctx, id, in)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		if ok, err := updateFormat.write(cmd.OutOrStdout(), note); ok {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d (v%d)\n", note.ID, note.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateBody, "body", "", "New body")
	updateCmd.Flags().StringVar(&updateTags, "tags", "", "New comma-separated tags (replaces the old ones)")
	updateCmd.Flags().BoolVar(&updateArchived, "archived", false, "Archive (true) or restore (false) the note")
	updateCmd.Flags().Int64Var(&updateIfVersion, "if-version", 0, "Only update when the note is at this version")
	updateCmd.Flags().BoolVar(&updateFormat.json, "json", false, "Output in JSON format")
	updateCmd.Flags().BoolVar(&updateFormat.yaml, "yaml", false, "Output in YAML format")
	updateCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
