package sim

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/game"
)

func smallCase(name string) game.InitialCase {
	return game.InitialCase{
		Name:  name,
		Board: game.Board{W: 11, H: 11},
		Body1: []core.Point{{X: 1, Y: 5}, {X: 2, Y: 5}},
		Dir1:  "right",
		Body2: []core.Point{{X: 9, Y: 5}, {X: 8, Y: 5}},
		Dir2:  "left",
		Food:  core.Point{X: 5, Y: 5},
	}
}

func quietOpts() Options {
	return Options{
		Rules:  game.Rules{FoodScore: 100, MaxTicks: 30},
		Logger: log.New(io.Discard),
	}
}

func TestRunRecordCountAndOrder(t *testing.T) {
	cases := []game.InitialCase{smallCase("a"), smallCase("b")}
	ids := []string{"aggressive", "safe"}

	opts := quietOpts()
	opts.Repetitions = 2
	opts.Workers = 3
	opts.BaseSeed = 7

	records, err := Run(context.Background(), cases, ids, opts)
	if err != nil {
		t.Fatal(err)
	}
	if want := 2 * 2 * 2 * 2; len(records) != want {
		t.Fatalf("got %d records, want %d", len(records), want)
	}

	// Output order is case, then pairing, then repetition.
	i := 0
	for _, c := range cases {
		for _, id1 := range ids {
			for _, id2 := range ids {
				for rep := 0; rep < 2; rep++ {
					r := records[i]
					if r.Case != c.Name || r.StrategyID1 != id1 || r.StrategyID2 != id2 || r.Rep != rep {
						t.Fatalf("record %d = (%s,%s,%s,%d), want (%s,%s,%s,%d)",
							i, r.Case, r.StrategyID1, r.StrategyID2, r.Rep, c.Name, id1, id2, rep)
					}
					if !r.Failed && !r.Outcome.Terminal() {
						t.Fatalf("record %d has non-terminal outcome %s", i, r.Outcome)
					}
					i++
				}
			}
		}
	}
}

func TestRunReproducibleAcrossWorkerCounts(t *testing.T) {
	cases := []game.InitialCase{smallCase("repro")}
	ids := []string{"aggressive", "noisy"}

	run := func(workers int) []OutcomeRecord {
		opts := quietOpts()
		opts.Repetitions = 25 // 4 pairings x 25 reps = 100 games
		opts.Workers = workers
		opts.BaseSeed = 12345

		records, err := Run(context.Background(), cases, ids, opts)
		if err != nil {
			t.Fatal(err)
		}
		return records
	}

	serial := run(1)
	parallel := run(8)
	if !reflect.DeepEqual(serial, parallel) {
		t.Error("records differ between 1 and 8 workers despite identical base seed")
	}
}

func TestRunDemotesInvalidCaseToFailedRecords(t *testing.T) {
	bad := smallCase("bad")
	bad.Food = bad.Body1[0] // food on a snake

	opts := quietOpts()
	opts.Repetitions = 2

	records, err := Run(context.Background(), []game.InitialCase{smallCase("good"), bad}, []string{"safe"}, opts)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range records {
		switch r.Case {
		case "bad":
			if !r.Failed || r.Err == "" {
				t.Errorf("bad case record not marked failed: %+v", r)
			}
		case "good":
			if r.Failed {
				t.Errorf("good case record marked failed: %+v", r)
			}
		}
	}
}

func TestRunRejectsUnknownStrategy(t *testing.T) {
	_, err := Run(context.Background(), []game.InitialCase{smallCase("x")}, []string{"safe", "alphabeta"}, quietOpts())
	if err == nil {
		t.Fatal("expected error for unknown strategy ID")
	}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	if _, err := Run(context.Background(), nil, []string{"safe"}, quietOpts()); err == nil {
		t.Error("expected error for empty case list")
	}
	if _, err := Run(context.Background(), []game.InitialCase{smallCase("x")}, nil, quietOpts()); err == nil {
		t.Error("expected error for empty strategy list")
	}
}

func TestRunReportsProgress(t *testing.T) {
	var calls int
	var lastDone, lastTotal int

	opts := quietOpts()
	opts.Repetitions = 3
	opts.OnProgress = func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	}

	records, err := Run(context.Background(), []game.InitialCase{smallCase("p")}, []string{"safe"}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if calls != len(records) {
		t.Errorf("progress called %d times, want %d", calls, len(records))
	}
	if lastDone != lastTotal || lastTotal != len(records) {
		t.Errorf("final progress %d/%d, want %d/%d", lastDone, lastTotal, len(records), len(records))
	}
}

func TestDeriveSeedSeparatesCoordinates(t *testing.T) {
	base := int64(42)
	a := deriveSeed(base, "c", "s1", "s2", 0, streamEngine)

	variants := []int64{
		deriveSeed(base, "c2", "s1", "s2", 0, streamEngine),
		deriveSeed(base, "c", "s2", "s1", 0, streamEngine),
		deriveSeed(base, "c", "s1", "s2", 1, streamEngine),
		deriveSeed(base, "c", "s1", "s2", 0, streamPlayer1),
		deriveSeed(base, "c", "s1", "s2", 0, streamPlayer2),
		deriveSeed(base+1, "c", "s1", "s2", 0, streamEngine),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d collides with the base coordinates", i)
		}
	}

	if b := deriveSeed(base, "c", "s1", "s2", 0, streamEngine); b != a {
		t.Error("deriveSeed is not a pure function of its inputs")
	}
}
