package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/sim"
	"github.com/vovakirdan/snake-duel/internal/storage"
)

var flagResultsDelete bool

var resultsCmd = &cobra.Command{
	Use:   "results [run-id]",
	Short: "Inspect stored batch runs",
	Long: `Without arguments, lists the most recent stored batch runs. With a
run ID, re-aggregates that run's game records and prints its standings.

Examples:
  duel results
  duel results 3
  duel results 3 --delete`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResultsCmd,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagResultsDelete, "delete", false, "Delete the given run instead of showing it")
}

func runResultsCmd(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		listRuns(store)
		return
	}

	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run ID %q\n", args[0])
		os.Exit(1)
	}

	if flagResultsDelete {
		if err := store.DeleteRun(runID); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting run: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted run %d\n", runID)
		return
	}

	showRun(store, runID)
}

func listRuns(store *storage.Store) {
	runs, err := store.RecentRuns(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		fmt.Println()
		fmt.Println("Run 'duel sim --save' to store a batch.")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-6s  %-5s  %-10s  %s\n", "ID", "Label", "Games", "Reps", "Seed", "Date")
	fmt.Printf("  %-4s  %-20s  %-6s  %-5s  %-10s  %s\n", "--", "-----", "-----", "----", "----", "----")
	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-6d  %-5d  %-10d  %s\n", r.ID, r.Label, r.Games, r.Repetitions, r.BaseSeed, dateStr)
	}

	fmt.Println()
	fmt.Println("Run 'duel results <id>' to see a run's standings.")
}

func showRun(store *storage.Store, runID int64) {
	entry, err := store.RunByID(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if entry == nil {
		fmt.Fprintf(os.Stderr, "Error: no run with ID %d\n", runID)
		os.Exit(1)
	}

	records, err := store.RunRecords(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving game records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %d (%s), %s\n", entry.ID, entry.Label, entry.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Rules: food score %d, max ticks %d\n", entry.FoodScore, entry.MaxTicks)
	fmt.Println()
	printStandings(entry.BaseSeed, len(records), sim.Aggregate(records))
}
