// Package report renders simulation batches into the exchange formats the
// surrounding tooling consumes: CSV for spreadsheets, Parquet for analytical
// pipelines and Markdown for human-readable summaries.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vovakirdan/snake-duel/internal/sim"
)

// csvHeader is the fixed column layout of a batch results file.
var csvHeader = []string{
	"case", "strategy1", "strategy2", "rep", "outcome",
	"score1", "score2", "len1", "len2", "ticks", "seed", "failed", "error",
}

// WriteCSV writes one row per game record, preceded by a header row.
func WriteCSV(w io.Writer, records []sim.OutcomeRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Case,
			r.StrategyID1,
			r.StrategyID2,
			strconv.Itoa(r.Rep),
			r.Outcome.String(),
			strconv.Itoa(r.Score1),
			strconv.Itoa(r.Score2),
			strconv.Itoa(r.Len1),
			strconv.Itoa(r.Len2),
			strconv.Itoa(r.Ticks),
			strconv.FormatInt(r.Seed, 10),
			strconv.FormatBool(r.Failed),
			r.Err,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the records to a file, creating it with 0644.
func WriteCSVFile(path string, records []sim.OutcomeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create csv file: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
