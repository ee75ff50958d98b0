package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/game"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

// Cell styles for the spectator grid.
var (
	styleSnake1  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleSnake2  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleDead    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleFood    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleBorder  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleOutcome = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// WatchConfig configures a spectated game.
type WatchConfig struct {
	Case        game.InitialCase
	Rules       game.Rules
	StrategyID1 string
	StrategyID2 string
	Seed        int64
	TickRate    int // ticks per second
}

// WatchModel is the Bubble Tea model for spectating one duel live.
type WatchModel struct {
	cfg    WatchConfig
	eng    *game.Engine
	s1, s2 game.Strategy
	paused bool
	err    error

	quitting bool
}

// NewWatchModel builds the spectator for the configured pairing. The game
// state is created eagerly so configuration errors surface before the
// terminal is taken over.
func NewWatchModel(cfg WatchConfig) (WatchModel, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 15
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := WatchModel{cfg: cfg}
	if err := m.reset(cfg.Seed); err != nil {
		return m, err
	}
	return m, nil
}

// reset builds fresh strategies and a fresh engine for the given seed.
func (m *WatchModel) reset(seed int64) error {
	s1, err := strategy.New(m.cfg.StrategyID1, seed+1)
	if err != nil {
		return err
	}
	s2, err := strategy.New(m.cfg.StrategyID2, seed+2)
	if err != nil {
		return err
	}
	st, err := game.NewState(m.cfg.Case, seed)
	if err != nil {
		return err
	}

	m.cfg.Seed = seed
	m.s1, m.s2 = s1, s2
	m.eng = game.NewEngine(st, m.cfg.Rules)
	return nil
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
		if !m.paused && !m.eng.Done() {
			return m, tickCmd(m.cfg.TickRate)
		}
	case "r":
		if err := m.reset(time.Now().UnixNano()); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.paused = false
		return m, tickCmd(m.cfg.TickRate)
	}
	return m, nil
}

// handleTick advances the game by one tick.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.eng.Done() {
		return m, nil
	}

	if err := m.eng.PlayTick(m.s1, m.s2); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if m.eng.Done() {
		return m, nil
	}
	return m, tickCmd(m.cfg.TickRate)
}

// Err returns the error that ended the session, if any.
func (m WatchModel) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.eng.State()
	var sb strings.Builder

	sb.WriteString(styleHeader.Render(fmt.Sprintf(
		"%dx%d  tick %d", st.Board.W, st.Board.H, st.Tick)))
	sb.WriteString("\n")
	sb.WriteString(styleSnake1.Render(fmt.Sprintf(
		"%s: %d (len %d)", m.s1.Name(), st.Snakes[0].Score, st.Snakes[0].Len())))
	sb.WriteString("  ")
	sb.WriteString(styleSnake2.Render(fmt.Sprintf(
		"%s: %d (len %d)", m.s2.Name(), st.Snakes[1].Score, st.Snakes[1].Len())))
	sb.WriteString("\n")

	sb.WriteString(renderGrid(st))

	if st.Outcome.Terminal() {
		sb.WriteString(styleOutcome.Render(outcomeLine(st, m.s1, m.s2)))
		sb.WriteString("\n")
	}
	sb.WriteString(styleHelp.Render("space pause | r restart | q quit"))
	return sb.String()
}

// renderGrid draws the board with a border, one rune per cell.
func renderGrid(st *game.State) string {
	var sb strings.Builder
	sb.Grow((st.Board.W + 3) * (st.Board.H + 2))

	horizontal := styleBorder.Render("+" + strings.Repeat("-", st.Board.W) + "+")
	vertical := styleBorder.Render("|")

	sb.WriteString(horizontal)
	sb.WriteString("\n")
	for y := 0; y < st.Board.H; y++ {
		sb.WriteString(vertical)
		for x := 0; x < st.Board.W; x++ {
			sb.WriteString(cellRune(st, core.Point{X: x, Y: y}))
		}
		sb.WriteString(vertical)
		sb.WriteString("\n")
	}
	sb.WriteString(horizontal)
	sb.WriteString("\n")
	return sb.String()
}

func cellRune(st *game.State, p core.Point) string {
	for i := range st.Snakes {
		s := &st.Snakes[i]
		if !s.Occupies(p) {
			continue
		}
		style := styleSnake1
		if i == 1 {
			style = styleSnake2
		}
		if !s.Alive {
			style = styleDead
		}
		if p == s.Head() {
			return style.Render("@")
		}
		return style.Render("o")
	}
	if p == st.Food {
		return styleFood.Render("*")
	}
	return " "
}

func outcomeLine(st *game.State, s1, s2 game.Strategy) string {
	switch st.Outcome {
	case game.OutcomeWin1:
		return fmt.Sprintf("%s wins after %d ticks", s1.Name(), st.Tick)
	case game.OutcomeWin2:
		return fmt.Sprintf("%s wins after %d ticks", s2.Name(), st.Tick)
	case game.OutcomeDraw:
		return fmt.Sprintf("draw after %d ticks", st.Tick)
	default:
		return ""
	}
}

// RunWatch starts the spectator in the local terminal.
func RunWatch(cfg WatchConfig) error {
	model, err := NewWatchModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(WatchModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
