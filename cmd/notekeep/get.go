package main

import (
	"github.com/spf13/cobra"
)

var getFormat outputFormat

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a note",
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

		note, err := h.GetNote(ctx, id)
		if err != nil {
			return err
		}

		if ok, err := getFormat.write(cmd.OutOrStdout(), note); ok {
			return err
		}
		printNote(cmd.OutOrStdout(), note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getFormat.json, "json", false, "Output in JSON format")
	getCmd.Flags().BoolVar(&getFormat.yaml, "yaml", false, "Output in YAML format")
	getCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
