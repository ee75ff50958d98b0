package sim

import (
	"hash/fnv"

	"github.com/vovakirdan/snake-duel/internal/game"
)

// OutcomeRecord is the result of one simulated game, tagged with the strategy
// IDs and repetition index that produced it. Failed records come from games
// whose initial case was rejected; they carry no scores and are counted
// separately so a bad case cannot masquerade as a draw.
type OutcomeRecord struct {
	game.Result

	StrategyID1 string
	StrategyID2 string
	Rep         int
	Failed      bool
	Err         string
}

// deriveSeed maps a game's coordinates to a seed that depends only on the
// base seed and the coordinates themselves. Workers may finish in any order;
// the seed a game gets never changes with scheduling.
func deriveSeed(base int64, caseName, id1, id2 string, rep int, stream byte) int64 {
	h := fnv.New64a()
	h.Write([]byte(caseName))
	h.Write([]byte{0})
	h.Write([]byte(id1))
	h.Write([]byte{0})
	h.Write([]byte(id2))
	h.Write([]byte{0, byte(rep), byte(rep >> 8), byte(rep >> 16), byte(rep >> 24), stream})
	return base ^ int64(h.Sum64())
}
