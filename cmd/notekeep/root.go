package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
)

var (
	verbose    bool
	dirFlag    string
	adapter    string
	configPath string
	timeout    time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notekeep",
	Short: "A small note store over local key-value storage",
	Long: `notekeep keeps a collection of notes (title, body, tags) in a local
key-value store: plain files, BadgerDB or SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if cfg != nil {
			// Validated by LoadConfig.
			level, _ = notekeep.ParseLevel(cfg.LogLevel)
		}
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Store directory (defaults to the nearest root or the working directory)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, badger, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .notekeep.yaml file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up on an operation (e.g. waiting for the store lock) after this long; 0 waits forever")
}

// loadConfig reads --config, or the .notekeep.yaml of the store directory when present.
func loadConfig() (*notekeep.Config, error) {
	path := configPath
	if path == "" {
		candidate := filepath.Join(storeDir(), ".notekeep.yaml")
		if _, err := os.Stat(candidate); err != nil {
			return nil, nil
		}
		path = candidate
	}
	return notekeep.LoadConfig(path)
}

// storeDir picks the store root: --dir, else the nearest root above the working directory, else ".".
func storeDir() string {
	if dirFlag != "" {
		return dirFlag
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, err := notekeep.FindRoot(wd); err == nil {
		return root
	}
	return wd
}

// openStore opens the store selected by the global flags and the config file.
// Flags win over the file.
func openStore(extra ...notekeep.Option) (*notekeep.Handle, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	dir := storeDir()
	opts := []notekeep.Option{notekeep.WithLogger(slog.Default())}
	if cfg != nil {
		opts = append(opts, cfg.Options()...)
		if cfg.Path != "" && dirFlag == "" {
			dir = cfg.Path
			if !filepath.IsAbs(dir) {
				base := filepath.Dir(configPath)
				if configPath == "" {
					base = storeDir()
				}
				dir = filepath.Join(base, dir)
			}
		}
	}
	if adapter != "" {
		opts = append(opts, notekeep.WithAdapter(adapter))
	}
	opts = append(opts, extra...)

	slog.Debug("opening store", "dir", dir, "adapter", adapter)
	return notekeep.Open(dir, opts...)
}

// commandContext bounds a single store operation by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
