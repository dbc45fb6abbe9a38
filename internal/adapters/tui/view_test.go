package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrenn/tempus/internal/app"
	"github.com/dkrenn/tempus/internal/domain"
)

func mustDur(t *testing.T, text string) domain.Duration {
	t.Helper()
	d, err := domain.ParseDuration(text)
	require.NoError(t, err)
	return d
}

func TestRenderBigTextShapes(t *testing.T) {
	out := renderBigText("1:05", domain.StyleFull)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, out, "█")

	// All rows of a glyph line render, including blank colon rows.
	for _, line := range lines {
		assert.NotEmpty(t, line)
	}
}

func TestRenderBigTextStyles(t *testing.T) {
	for _, style := range []domain.Style{
		domain.StyleLight, domain.StyleBraille, domain.StyleCross,
	} {
		out := renderBigText("42", style)
		assert.NotContains(t, out, "#", "placeholder must never leak")
	}
}

func TestRenderBigTextSkipsUnknownRunes(t *testing.T) {
	withUnits := renderBigText("10:00", domain.StyleFull)
	// The unit letters have no glyphs; output matches the digits alone.
	assert.Equal(t, withUnits, renderBigText("y10:00d", domain.StyleFull))
}

func TestClockTextSplitsUnitPrefix(t *testing.T) {
	prefix, text := clockText(mustDur(t, "1y 10d 10:00:01"), false)
	assert.Equal(t, "1y 10d", prefix)
	assert.Equal(t, "10:00:01", text)

	prefix, text = clockText(mustDur(t, "25:00"), false)
	assert.Empty(t, prefix)
	assert.Equal(t, "25:00", text)

	_, text = clockText(mustDur(t, "5"), true)
	assert.Equal(t, "5.0", text)
}

func TestViewBeforeFirstSnapshot(t *testing.T) {
	m := NewModel(nil)
	assert.Equal(t, "starting...", m.View())
}

func TestViewRendersCountdown(t *testing.T) {
	m := NewModel(nil)
	m.snap = app.Snapshot{
		Mode: domain.ModeCountdown,
		Countdown: app.CountdownView{
			Value:   mustDur(t, "10:00"),
			State:   domain.Running,
			Percent: 1,
		},
	}
	m.ready = true

	out := m.View()
	assert.Contains(t, out, "countdown")
	assert.Contains(t, out, "running")
}

func TestViewRendersMenu(t *testing.T) {
	m := NewModel(nil)
	m.snap = app.Snapshot{MenuOpen: true}
	m.ready = true

	out := m.View()
	assert.Contains(t, out, "key bindings")
	assert.Contains(t, out, "quit")
}

func TestViewRendersTextEditOverlay(t *testing.T) {
	m := NewModel(nil)
	m.snap = app.Snapshot{
		Mode: domain.ModeEvent,
		TextEdit: &app.TextEditView{
			Kind:      app.EditEventTarget,
			TimeInput: "2026-01-01 00:00:00",
			ErrMsg:    "bad time",
		},
	}
	m.ready = true

	out := m.View()
	assert.Contains(t, out, "edit event")
	assert.Contains(t, out, "bad time")
}
