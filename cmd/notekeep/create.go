package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
)

var (
	createTitle  string
	createBody   string
	createTags   string
	createFormat outputFormat
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Long:  `Create a note with a title, body and comma-separated tags. Prints the stored note.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openStore()
		if err != nil {
			return err
		}
		defer h.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		note, err := h.CreateNote(ctx, notekeep.CreateInput{
			Title: createTitle,
			Body:  createBody,
			Tags:  parseTags(createTags),
		})
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		if ok, err := createFormat.write(cmd.OutOrStdout(), note); ok {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created note %d\n", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createTitle, "title", "", "Note title")
	createCmd.Flags().StringVar(&createBody, "body", "", "Note body")
	createCmd.Flags().StringVar(&createTags, "tags", "", `Comma-separated tags, e.g. "work, ideas"`)
	createCmd.Flags().BoolVar(&createFormat.json, "json", false, "Output in JSON format")
	createCmd.Flags().BoolVar(&createFormat.yaml, "yaml", false, "Output in YAML format")
	createCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
