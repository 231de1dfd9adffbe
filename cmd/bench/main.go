package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/notekeep"
)

// bench measures the whole-collection rewrite cost of each operation
// as the number of notes grows.
func main() {
	count := flag.Int("count", 1000, "Number of notes to create")
	adapter := flag.String("adapter", "fs", "Storage adapter: fs, memory, badger or sqlite")
	keep := flag.Bool("keep", false, "Keep the benchmark store after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "notekeep_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	h, err := notekeep.Open(benchDir, notekeep.WithAdapter(*adapter), notekeep.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	fmt.Printf("Creating %d notes in %s (%s)...\n", *count, benchDir, *adapter)
	startCreate := time.Now()
	for i := 0; i < *count; i++ {
		_, err := h.CreateNote(ctx, notekeep.CreateInput{
			Title: fmt.Sprintf("Note %d", i),
			Body:  "This is a benchmark note.",
			Tags:  []string{"benchmark", "test"},
		})
		if err != nil {
			panic(err)
		}
	}
	createDuration := time.Since(startCreate)

	startUpdate := time.Now()
	if _, err := h.UpdateNote(ctx, int64(*count/2+1), notekeep.UpdateInput{Title: "updated"}); err != nil {
		panic(err)
	}
	updateDuration := time.Since(startUpdate)

	if err := h.Close(); err != nil {
		panic(err)
	}

	// Re-open to simulate a new CLI command run.
	h2, err := notekeep.Open(benchDir, notekeep.WithAdapter(*adapter), notekeep.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	defer h2.Close()

	startList := time.Now()
	list, err := h2.ListNotes(ctx)
	if err != nil {
		panic(err)
	}
	listDuration := time.Since(startList)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %s):\n", len(list), *adapter)
	fmt.Printf("  Create (total): %v\n", createDuration)
	fmt.Printf("  Create (avg):   %v\n", createDuration/time.Duration(max(*count, 1)))
	fmt.Printf("  Update (one):   %v\n", updateDuration)
	fmt.Printf("  List (reopen):  %v\n", listDuration)
	fmt.Printf("--------------------------------------------------\n")
}
