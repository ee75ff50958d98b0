package game

// Snapshot captures the observable game state for determinism testing.
// Two games driven by the same seeds must produce identical snapshots at
// every tick.
type Snapshot struct {
	Tick    int
	Outcome Outcome

	Head1X, Head1Y int
	Head2X, Head2Y int
	Len1, Len2     int
	Score1, Score2 int
	Dir1, Dir2     string
	Alive1, Alive2 bool

	FoodX, FoodY int
}

// Snapshot returns the current snapshot of the state.
func (st *State) Snapshot() Snapshot {
	h1 := st.Snakes[0].Head()
	h2 := st.Snakes[1].Head()
	return Snapshot{
		Tick:    st.Tick,
		Outcome: st.Outcome,
		Head1X:  h1.X, Head1Y: h1.Y,
		Head2X: h2.X, Head2Y: h2.Y,
		Len1: st.Snakes[0].Len(), Len2: st.Snakes[1].Len(),
		Score1: st.Snakes[0].Score, Score2: st.Snakes[1].Score,
		Dir1: st.Snakes[0].Dir.String(), Dir2: st.Snakes[1].Dir.String(),
		Alive1: st.Snakes[0].Alive, Alive2: st.Snakes[1].Alive,
		FoodX: st.Food.X, FoodY: st.Food.Y,
	}
}
