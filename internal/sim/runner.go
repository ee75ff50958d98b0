// Package sim runs batches of games across initial cases and strategy
// pairings on a worker pool and aggregates the outcomes into win-rate
// statistics. Batches are reproducible: a fixed base seed yields bit-for-bit
// identical records regardless of worker count or scheduling order.
package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-duel/internal/game"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

// Seed streams per game, so the engine and the two strategies never share a
// generator.
const (
	streamEngine byte = iota
	streamPlayer1
	streamPlayer2
)

// Options configure a batch run.
type Options struct {
	Rules       game.Rules
	Repetitions int
	Workers     int   // <= 0 means GOMAXPROCS
	BaseSeed    int64

	// OnProgress, when set, is called after every finished game with the
	// number of completed games and the batch total.
	OnProgress func(done, total int)

	Logger *log.Logger
}

type job struct {
	index    int // position in the output slice
	c        game.InitialCase
	id1, id2 string
	rep      int
}

// Run plays every ordered strategy pairing over every case, Repetitions times
// each, and returns one record per game in a stable order (case, then
// pairing, then repetition). Games with invalid cases produce Failed records;
// an engine invariant violation aborts the whole batch.
func Run(ctx context.Context, cases []game.InitialCase, ids []string, opts Options) ([]OutcomeRecord, error) {
	if len(cases) == 0 {
		return nil, errors.New("sim: no cases to run")
	}
	if len(ids) == 0 {
		return nil, errors.New("sim: no strategies to run")
	}
	for _, id := range ids {
		if !strategy.Exists(id) {
			return nil, fmt.Errorf("sim: unknown strategy %q", id)
		}
	}
	if opts.Repetitions <= 0 {
		opts.Repetitions = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	jobs := buildJobs(cases, ids, opts.Repetitions)
	records := make([]OutcomeRecord, len(jobs))

	jobCh := make(chan job)
	doneCh := make(chan int)
	errCh := make(chan error, workers)

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for w := 0; w < workers; w++ {
		go func() {
			for j := range jobCh {
				rec, err := playJob(j, opts, logger)
				if err != nil {
					errCh <- err
					cancel()
					return
				}
				records[j.index] = rec
				select {
				case doneCh <- 1:
				case <-wctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, j := range jobs {
			select {
			case jobCh <- j:
			case <-wctx.Done():
				return
			}
		}
	}()

	done := 0
	for done < len(jobs) {
		select {
		case <-doneCh:
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(done, len(jobs))
			}
		case err := <-errCh:
			return nil, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return records, nil
}

func buildJobs(cases []game.InitialCase, ids []string, reps int) []job {
	jobs := make([]job, 0, len(cases)*len(ids)*len(ids)*reps)
	for _, c := range cases {
		for _, id1 := range ids {
			for _, id2 := range ids {
				for rep := 0; rep < reps; rep++ {
					jobs = append(jobs, job{
						index: len(jobs),
						c:     c,
						id1:   id1,
						id2:   id2,
						rep:   rep,
					})
				}
			}
		}
	}
	return jobs
}

// playJob runs one game. Configuration errors are demoted to a Failed record;
// anything else is fatal for the batch.
func playJob(j job, opts Options, logger *log.Logger) (OutcomeRecord, error) {
	rec := OutcomeRecord{
		StrategyID1: j.id1,
		StrategyID2: j.id2,
		Rep:         j.rep,
	}

	seed := func(stream byte) int64 {
		return deriveSeed(opts.BaseSeed, j.c.Name, j.id1, j.id2, j.rep, stream)
	}

	s1, err := strategy.New(j.id1, seed(streamPlayer1))
	if err != nil {
		return rec, err
	}
	s2, err := strategy.New(j.id2, seed(streamPlayer2))
	if err != nil {
		return rec, err
	}

	res, err := game.Run(j.c, s1, s2, opts.Rules, seed(streamEngine))
	rec.Result = res
	if err != nil {
		if !errors.Is(err, game.ErrConfiguration) {
			return rec, err
		}
		logger.Warn("skipping game with invalid case",
			"case", j.c.Name, "s1", j.id1, "s2", j.id2, "err", err)
		rec.Failed = true
		rec.Err = err.Error()
	}
	return rec, nil
}
