package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-duel/internal/platform/tui"
	"github.com/vovakirdan/snake-duel/internal/report"
	"github.com/vovakirdan/snake-duel/internal/sim"
	"github.com/vovakirdan/snake-duel/internal/storage"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

var (
	flagSimStrategies string
	flagSimReps       int
	flagSimWorkers    int
	flagSimCSV        string
	flagSimParquet    string
	flagSimMarkdown   string
	flagSimSave       bool
	flagSimLabel      string
	flagSimNoProgress bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a simulation batch and aggregate win rates",
	Long: `Run every strategy pairing over every starting case, many times each,
on parallel workers. Prints the aggregated standings and win-rate matrices
and optionally exports the raw game records.

Batches are reproducible: the same --seed yields identical results
regardless of --workers.

Examples:
  duel sim
  duel sim --reps 100 --seed 42
  duel sim --strategies aggressive,safe --csv results.csv
  duel sim --parquet batch.parquet --markdown report.md
  duel sim --save --label nightly`,
	Run: runSimCmd,
}

func init() {
	simCmd.Flags().StringVar(&flagSimStrategies, "strategies", "", "Comma-separated strategy IDs (default: all)")
	simCmd.Flags().IntVar(&flagSimReps, "reps", 0, "Repetitions per case and pairing (default: from config)")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel workers (0 = one per CPU)")
	simCmd.Flags().StringVar(&flagSimCSV, "csv", "", "Write raw game records to a CSV file")
	simCmd.Flags().StringVar(&flagSimParquet, "parquet", "", "Write raw game records to a Parquet file")
	simCmd.Flags().StringVar(&flagSimMarkdown, "markdown", "", "Write the aggregated report to a Markdown file")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the batch to the results database")
	simCmd.Flags().StringVar(&flagSimLabel, "label", "", "Label for the saved batch")
	simCmd.Flags().BoolVar(&flagSimNoProgress, "no-progress", false, "Disable the progress bar")
}

func runSimCmd(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	ids := simStrategyIDs()
	cases := cfg.ActiveCases()
	seed := baseSeed(cfg)

	opts := sim.Options{
		Rules:       cfg.GameRules(),
		Repetitions: cfg.Simulation.Repetitions,
		Workers:     cfg.Simulation.Workers,
		BaseSeed:    seed,
		Logger:      log.Default(),
	}
	if flagSimReps > 0 {
		opts.Repetitions = flagSimReps
	}
	if flagSimWorkers > 0 {
		opts.Workers = flagSimWorkers
	}

	ctx := context.Background()
	var records []sim.OutcomeRecord
	var err error
	if flagSimNoProgress || !term.IsTerminal(int(os.Stdout.Fd())) {
		records, err = sim.Run(ctx, cases, ids, opts)
	} else {
		records, err = tui.RunBatchWithProgress(ctx, cases, ids, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running batch: %v\n", err)
		os.Exit(1)
	}

	summary := sim.Aggregate(records)
	printStandings(seed, len(records), summary)

	if flagSimCSV != "" {
		if err := report.WriteCSVFile(flagSimCSV, records); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", flagSimCSV)
	}
	if flagSimParquet != "" {
		if err := report.WriteParquetFile(flagSimParquet, records); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing Parquet: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", flagSimParquet)
	}
	if flagSimMarkdown != "" {
		if err := report.WriteMarkdownFile(flagSimMarkdown, strategy.List(), cases, summary); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing Markdown: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", flagSimMarkdown)
	}

	if flagSimSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		label := flagSimLabel
		if label == "" {
			label = strings.Join(ids, ",")
		}
		runID, err := store.SaveRun(label, opts.Rules, seed, opts.Repetitions, records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving batch: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved as run %d\n", runID)
	}
}

// simStrategyIDs resolves the --strategies flag, defaulting to every
// registered strategy.
func simStrategyIDs() []string {
	if flagSimStrategies == "" {
		infos := strategy.List()
		ids := make([]string, len(infos))
		for i, info := range infos {
			ids[i] = info.ID
		}
		return ids
	}

	ids := strings.Split(flagSimStrategies, ",")
	for i, id := range ids {
		ids[i] = strings.TrimSpace(id)
		if !strategy.Exists(ids[i]) {
			fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", ids[i])
			fmt.Fprintln(os.Stderr, "Run 'duel list' to see available strategies.")
			os.Exit(1)
		}
	}
	return ids
}

// printStandings prints the per-strategy tallies and one win-rate matrix per
// case to stdout.
func printStandings(seed int64, games int, s sim.Summary) {
	fmt.Printf("Batch: %d games, base seed %d\n", games, seed)
	fmt.Println()

	fmt.Printf("  %-12s  %6s  %5s  %6s  %5s  %8s  %8s\n",
		"Strategy", "Games", "Wins", "Losses", "Draws", "Failures", "Win rate")
	for _, st := range s.Standings {
		fmt.Printf("  %-12s  %6d  %5d  %6d  %5d  %8d  %7.1f%%\n",
			st.StrategyID, st.Games, st.Wins, st.Losses, st.Draws, st.Failures, 100*st.WinRate())
	}
	fmt.Println()

	var lastCase string
	for _, c := range s.Cells {
		if c.Case != lastCase {
			lastCase = c.Case
			fmt.Printf("%s:\n", c.Case)
		}
		fmt.Printf("  %-12s vs %-12s  %5.1f%% / %5.1f%%  (draws %d, mean ticks %.0f, scores %.0f/%.0f, var %.0f/%.0f)\n",
			c.StrategyID1, c.StrategyID2, 100*c.WinRate1(), 100*c.WinRate2(), c.Draws, c.MeanTicks(),
			c.MeanScore1(), c.MeanScore2(), c.ScoreVariance1(), c.ScoreVariance2())
	}
}
