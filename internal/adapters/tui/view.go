package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkrenn/tempus/internal/app"
	"github.com/dkrenn/tempus/internal/domain"
)

var (
	clockStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	blinkStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95A5A6")).Italic(true)
)

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}
	snap := m.snap

	if snap.MenuOpen {
		return m.center(menuView())
	}

	sections := []string{
		tabsView(snap.Mode),
		"",
		m.bodyView(snap),
		"",
		m.footerView(snap),
	}
	return m.center(strings.Join(sections, "\n"))
}

func (m Model) center(content string) string {
	if m.snap.Width <= 0 || m.snap.Height <= 0 {
		return content
	}
	return lipgloss.Place(m.snap.Width, m.snap.Height,
		lipgloss.Center, lipgloss.Center, content)
}

func tabsView(active domain.Mode) string {
	parts := make([]string, 0, len(domain.ModeNames()))
	for i, name := range domain.ModeNames() {
		if domain.Mode(i) == active {
			parts = append(parts, activeTab.Render("["+name+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+name+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) bodyView(snap app.Snapshot) string {
	if snap.TextEdit != nil {
		return textEditView(snap)
	}
	switch snap.Mode {
	case domain.ModeCountdown:
		return m.countdownView(snap)
	case domain.ModeTimer:
		return m.timerView(snap)
	case domain.ModePomodoro:
		return m.pomodoroView(snap)
	case domain.ModeEvent:
		return m.eventView(snap)
	case domain.ModeLocalTime:
		return m.localTimeView(snap)
	}
	return ""
}

// clockText splits a duration display into a plain unit prefix
// ("1y 10d") and the part drawn with big glyphs.
func clockText(d domain.Duration, showDecis bool) (prefix, text string) {
	text = d.String()
	if i := strings.LastIndex(text, " "); i >= 0 {
		prefix, text = text[:i], text[i+1:]
	}
	if showDecis {
		text = fmt.Sprintf("%s.%d", text, d.DecisMod())
	}
	return prefix, text
}

// bigClock renders the value under the snapshot's glyph style; if an
// edit overlay is open, its pending value is shown instead along with
// the field cursor.
func (m Model) bigClock(snap app.Snapshot, d domain.Duration, sign string) string {
	style := clockStyle
	if snap.BlinkOn {
		style = blinkStyle
	}

	value := d
	if snap.Edit != nil {
		value = snap.Edit.Pending
	}
	prefix, text := clockText(value, snap.ShowDecis)

	var b strings.Builder
	if prefix != "" {
		b.WriteString(dimStyle.Render(prefix))
		b.WriteString("\n")
	}
	b.WriteString(style.Render(renderBigText(sign+text, snap.Style)))
	if snap.Edit != nil {
		b.WriteString("\n")
		b.WriteString(editCursorView(snap.Edit))
	}
	return b.String()
}

func editCursorView(edit *app.EditView) string {
	fields := []string{"seconds", "minutes", "hours"}
	name := fields[int(edit.Field)]
	return statusStyle.Render(fmt.Sprintf("editing %s  ↑/↓ adjust  ←/→ field  enter save  esc cancel", name))
}

func (m Model) countdownView(snap app.Snapshot) string {
	cd := snap.Countdown
	if cd.InMet {
		clock := m.bigClock(snap, cd.Elapsed, "+")
		return clock + "\n" + dimStyle.Render("elapsed past zero")
	}
	clock := m.bigClock(snap, cd.Value, "")
	bar := m.progress.ViewAs(cd.Percent)
	return clock + "\n\n" + bar + "\n" + stateLine(cd.State)
}

func (m Model) timerView(snap app.Snapshot) string {
	clock := m.bigClock(snap, snap.Timer.Value, "")
	return clock + "\n" + stateLine(snap.Timer.State)
}

func (m Model) pomodoroView(snap app.Snapshot) string {
	p := snap.Pomodoro
	header := titleStyle.Render(p.Side.String()) +
		dimStyle.Render(fmt.Sprintf("  round %d", p.Rounds))
	clock := m.bigClock(snap, p.Value, "")
	bar := m.progress.ViewAs(p.Percent)
	return header + "\n" + clock + "\n\n" + bar + "\n" + stateLine(p.State)
}

func (m Model) eventView(snap app.Snapshot) string {
	ev := snap.Event
	title := ev.Title
	if title == "" {
		title = "event"
	}
	sign := ""
	if ev.Polarity == domain.Since {
		sign = "+"
	}
	clock := m.bigClock(snap, ev.Value, sign)
	return titleStyle.Render(title) + "  " + dimStyle.Render(ev.Polarity.String()) +
		"\n" + clock +
		"\n" + dimStyle.Render(ev.Target)
}

func (m Model) localTimeView(snap app.Snapshot) string {
	style := clockStyle
	big := style.Render(renderBigText(snap.LocalTime, snap.Style))
	// The 12-hour suffix has no big glyphs, keep the plain form below.
	return big + "\n" + dimStyle.Render(snap.LocalTime)
}

func textEditView(snap app.Snapshot) string {
	te := snap.TextEdit
	var b strings.Builder
	switch te.Kind {
	case app.EditEventTarget:
		b.WriteString(titleStyle.Render("edit event"))
		b.WriteString("\n\n")
		b.WriteString("time:  " + te.TimeInput + "\n")
		b.WriteString("title: " + te.TitleInput + "\n")
	case app.EditCountdownByTime:
		b.WriteString(titleStyle.Render("count down to a time of day"))
		b.WriteString("\n\n")
		b.WriteString("time:  " + te.TimeInput + "\n")
	}
	if te.ErrMsg != "" {
		b.WriteString("\n" + errorStyle.Render(te.ErrMsg))
	}
	b.WriteString("\n" + statusStyle.Render("enter save  esc cancel  tab switch field"))
	return b.String()
}

func stateLine(s domain.RunState) string {
	switch s {
	case domain.Running:
		return dimStyle.Render("running")
	case domain.Paused:
		return dimStyle.Render("paused")
	case domain.Done:
		return titleStyle.Render("done")
	default:
		return dimStyle.Render("press space to start")
	}
}

func (m Model) footerView(snap app.Snapshot) string {
	if snap.StatusMsg != "" {
		return statusStyle.Render(snap.StatusMsg)
	}
	hints := "space run/pause  e edit  r reset  ←/→ mode  s style  m menu  q quit"
	if snap.Mode == domain.ModePomodoro {
		hints = "space run/pause  ctrl+←/→ side  ctrl+r full reset  m menu  q quit"
	}
	return dimStyle.Render(hints)
}

func menuView() string {
	rows := []struct{ key, desc string }{
		{"space", "start / pause"},
		{"r", "reset mode (ctrl+r: full pomodoro reset)"},
		{"e", "edit value (event: edit target and title)"},
		{"ctrl+e", "countdown: count down to a time of day"},
		{"i", "keep current value as the new initial"},
		{"←/→, tab", "switch mode (1-5 jump directly)"},
		{"ctrl+←/→", "pomodoro: switch side"},
		{"s", "cycle glyph style"},
		{"d", "toggle deciseconds"},
		{"f", "local time: cycle format"},
		{"n", "toggle notifications"},
		{"b", "toggle blink"},
		{"ctrl+s", "save state now"},
		{"m", "close this menu"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("key bindings"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%12s  %s\n", r.key, r.desc))
	}
	return b.String()
}
