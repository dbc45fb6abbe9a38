// Package tui is the display layer. The bubbletea model here renders
// snapshots and forwards raw input onto the event bus; it never
// touches application state itself.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkrenn/tempus/internal/app"
	"github.com/dkrenn/tempus/internal/events"
)

// snapshotMsg delivers a fresh render snapshot from the engine.
type snapshotMsg app.Snapshot

// Model is a render-only bubbletea model. Key and resize events go
// straight onto the bus; state arrives back as snapshots.
type Model struct {
	snap     app.Snapshot
	progress progress.Model
	publish  func(events.Event)
	ready    bool
}

func NewModel(publish func(events.Event)) Model {
	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = 40
	return Model{progress: p, publish: publish}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.publish(events.Key{Msg: msg})
	case tea.WindowSizeMsg:
		width := msg.Width - 10
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.progress.Width = width
		}
		m.publish(events.Resize{Width: msg.Width, Height: msg.Height})
	case snapshotMsg:
		m.snap = app.Snapshot(msg)
		m.ready = true
		if m.snap.Quitting {
			return m, tea.Quit
		}
	}
	return m, nil
}

// NewProgram builds the terminal program wired to the bus.
func NewProgram(ctx context.Context, bus *events.Bus) *tea.Program {
	m := NewModel(func(ev events.Event) {
		bus.Publish(ctx, ev)
	})
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
}

// Send pushes a snapshot into a running program.
func Send(p *tea.Program, snap app.Snapshot) {
	p.Send(snapshotMsg(snap))
}
