package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-duel/internal/game"
	"github.com/vovakirdan/snake-duel/internal/sim"
)

type batchProgressMsg struct {
	done, total int
}

type batchDoneMsg struct {
	records []sim.OutcomeRecord
	err     error
}

// ProgressModel renders a progress bar while a batch runs in the background.
type ProgressModel struct {
	bar    progress.Model
	cancel context.CancelFunc

	done, total int
	finished    bool
	cancelled   bool
	records     []sim.OutcomeRecord
	err         error
}

func newProgressModel(cancel context.CancelFunc, total int) ProgressModel {
	return ProgressModel{
		bar:    progress.New(progress.WithDefaultGradient()),
		cancel: cancel,
		total:  total,
	}
}

// Init does nothing; batch events arrive via Program.Send.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			m.cancel()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 10
		return m, nil
	case batchProgressMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil
	case batchDoneMsg:
		m.finished = true
		m.records, m.err = msg.records, msg.err
		return m, tea.Quit
	}
	return m, nil
}

// View renders the progress bar and counters.
func (m ProgressModel) View() string {
	if m.finished {
		return ""
	}

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	status := fmt.Sprintf("%d/%d games", m.done, m.total)
	if m.cancelled {
		status += " (cancelling)"
	}
	return fmt.Sprintf("\n  %s  %s\n\n  q to cancel\n", m.bar.ViewAs(frac), status)
}

// RunBatchWithProgress runs a simulation batch while showing a live progress
// bar in the terminal. Pressing q cancels the batch.
func RunBatchWithProgress(ctx context.Context, cases []game.InitialCase, ids []string, opts sim.Options) ([]sim.OutcomeRecord, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := len(cases) * len(ids) * len(ids) * opts.Repetitions
	p := tea.NewProgram(newProgressModel(cancel, total))

	// Send is safe from other goroutines and a no-op once the program has
	// finished, so neither callback can block the runner.
	opts.OnProgress = func(done, total int) {
		p.Send(batchProgressMsg{done: done, total: total})
	}

	done := make(chan batchDoneMsg, 1)
	go func() {
		records, err := sim.Run(ctx, cases, ids, opts)
		msg := batchDoneMsg{records: records, err: err}
		done <- msg
		p.Send(msg)
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return nil, err
	}
	if m, ok := final.(ProgressModel); ok && m.finished {
		return m.records, m.err
	}

	// UI exited before the batch finished; stop the runner and reap it.
	cancel()
	msg := <-done
	return msg.records, msg.err
}
