package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/snake-duel/internal/sim"
)

// GameRow is one game record in the Parquet export. Strategy and case
// columns are dictionary-encoded; a batch repeats them thousands of times.
type GameRow struct {
	Case      string `parquet:"case,dict"`
	Strategy1 string `parquet:"strategy1,dict"`
	Strategy2 string `parquet:"strategy2,dict"`
	Rep       int32  `parquet:"rep"`
	Outcome   string `parquet:"outcome,dict"`
	Score1    int32  `parquet:"score1"`
	Score2    int32  `parquet:"score2"`
	Len1      int32  `parquet:"len1"`
	Len2      int32  `parquet:"len2"`
	Ticks     int32  `parquet:"ticks"`
	Seed      int64  `parquet:"seed"`
	Failed    bool   `parquet:"failed"`
	Error     string `parquet:"error,optional"`
}

// WriteParquetFile writes the records as a zstd-compressed Parquet file.
// The file is written to a temp path and renamed atomically.
func WriteParquetFile(outPath string, records []sim.OutcomeRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}

	rows := make([]GameRow, len(records))
	for i, r := range records {
		rows[i] = GameRow{
			Case:      r.Case,
			Strategy1: r.StrategyID1,
			Strategy2: r.StrategyID2,
			Rep:       int32(r.Rep),
			Outcome:   r.Outcome.String(),
			Score1:    int32(r.Score1),
			Score2:    int32(r.Score2),
			Len1:      int32(r.Len1),
			Len2:      int32(r.Len2),
			Ticks:     int32(r.Ticks),
			Seed:      r.Seed,
			Failed:    r.Failed,
			Error:     r.Err,
		}
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "duel_game_v1"),
	); err != nil {
		return fmt.Errorf("report: write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("report: rename parquet: %w", err)
	}
	return nil
}

// ReadParquetFile loads a previously exported batch, mainly for verification.
func ReadParquetFile(path string) ([]GameRow, error) {
	rows, err := parquet.ReadFile[GameRow](path)
	if err != nil {
		return nil, fmt.Errorf("report: read parquet: %w", err)
	}
	return rows, nil
}
