package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
	"github.com/aretw0/notekeep/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Stream storage change events",
	Long: `Print a line per change made to the store by other processes.
The optional pattern is a glob over storage keys (default "**").
Only the keys of the note store are reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h, err := openStore(notekeep.WithWatcherErrorHandler(func(err error) {
			fmt.Fprintln(cmd.ErrOrStderr(), "watch error:", err)
		}))
		if err != nil {
			return err
		}
		defer h.Close()

		events, err := h.Watch(ctx, pattern)
		if err != nil {
			return err
		}

		source := lifecycle.NewSource(events, h.Keys()...)
		if err := source.Start(ctx); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes (Ctrl+C to stop)")
		for e := range source.Events() {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
