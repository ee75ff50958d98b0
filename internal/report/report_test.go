package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-duel/internal/game"
	"github.com/vovakirdan/snake-duel/internal/sim"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

func testRecords() []sim.OutcomeRecord {
	mk := func(c, id1, id2 string, outcome game.Outcome, rep int) sim.OutcomeRecord {
		return sim.OutcomeRecord{
			Result: game.Result{
				Case:    c,
				Outcome: outcome,
				Score1:  200,
				Score2:  100,
				Len1:    4,
				Len2:    3,
				Ticks:   57,
				Seed:    int64(rep),
			},
			StrategyID1: id1,
			StrategyID2: id2,
			Rep:         rep,
		}
	}
	failed := mk("Classic Start", "safe", "aggressive", game.OutcomeOngoing, 2)
	failed.Failed = true
	failed.Err = "invalid initial case"

	return []sim.OutcomeRecord{
		mk("Classic Start", "aggressive", "safe", game.OutcomeWin1, 0),
		mk("Classic Start", "aggressive", "safe", game.OutcomeDraw, 1),
		mk("Classic Start", "safe", "aggressive", game.OutcomeWin2, 0),
		failed,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testRecords()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want header + 4 records", len(rows))
	}
	if rows[0][0] != "case" || rows[0][4] != "outcome" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Classic Start" || rows[1][4] != "win1" || rows[1][5] != "200" {
		t.Errorf("unexpected first record row: %v", rows[1])
	}
	if rows[4][11] != "true" || rows[4][12] == "" {
		t.Errorf("failed record not exported: %v", rows[4])
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.parquet")
	records := testRecords()

	if err := WriteParquetFile(path, records); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadParquetFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(records) {
		t.Fatalf("got %d rows, want %d", len(rows), len(records))
	}
	for i, row := range rows {
		r := records[i]
		if row.Case != r.Case || row.Strategy1 != r.StrategyID1 || row.Outcome != r.Outcome.String() {
			t.Errorf("row %d = %+v, want record %+v", i, row, r)
		}
		if int(row.Score1) != r.Score1 || int(row.Ticks) != r.Ticks || row.Seed != r.Seed {
			t.Errorf("row %d numeric fields differ: %+v vs %+v", i, row, r)
		}
		if row.Failed != r.Failed {
			t.Errorf("row %d failure flag differs", i)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	summary := sim.Aggregate(testRecords())

	err := WriteMarkdown(&buf, strategy.List(), game.BuiltinCases(100), summary)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Duel Simulation Report",
		"## Strategies",
		"| aggressive |",
		"## Cases",
		"| Classic Start |",
		"## Standings",
		"## Win rates: Classic Start",
		"### Final scores: Classic Start",
		"| aggressive | safe | 200.0 | 0.0 | 100.0 | 0.0 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// aggressive vs safe: one win and one draw as player 1 -> 75%
	if !strings.Contains(out, "75.0%") {
		t.Errorf("expected a 75.0%% cell in:\n%s", out)
	}
}
