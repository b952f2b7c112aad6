package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Timeframe is a preset date range, relative to today.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

var timeframeLabels = map[Timeframe]string{
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeAll:       "All Time",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if label, ok := timeframeLabels[t]; ok {
		return label
	}

	return "Unknown"
}

// timeframeToDateRange returns the first and last day of tf relative to now.
// Weeks start on Monday. All and Custom have no range.
func timeframeToDateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	monday := now.AddDate(0, 0, -daysSinceMonday(now))
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	switch tf {
	case TimeframeThisWeek:
		return monday, now
	case TimeframeLastWeek:
		return monday.AddDate(0, 0, -7), monday.AddDate(0, 0, -1)
	case TimeframeThisMonth:
		return firstOfMonth, now
	case TimeframeLastMonth:
		return firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1)
	}

	return time.Time{}, time.Time{}
}

func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// normalizeDateRange widens the range to whole days in loc.
func normalizeDateRange(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, loc)
}

// TimeframeSelectedMsg carries the chosen range. Start and End are zero
// when All is set.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// TimeframePicker lets the user pick a preset range or type one in. Ranges
// are whole days in the ledger's timezone.
type TimeframePicker struct {
	custom   bool
	selected Timeframe
	minFrame Timeframe
	loc      *time.Location
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	onEnd      bool

	err error
}

func newDateInput(prompt string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = "YYYY-MM-DD"
	in.CharLimit = len(time.DateOnly)
	in.Width = 12

	return in
}

// NewTimeframePicker lists the presets from minFrame onwards.
func NewTimeframePicker(minFrame Timeframe, loc *time.Location) TimeframePicker {
	return TimeframePicker{
		selected:   minFrame,
		minFrame:   minFrame,
		loc:        loc,
		now:        time.Now,
		startInput: newDateInput("From: "),
		endInput:   newDateInput("To:   "),
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	switch {
	case !m.custom && isKey:
		return m.updatePresets(keyMsg)
	case m.custom && isKey && m.handlesKey(keyMsg):
		return m.updateCustom(keyMsg)
	case m.custom:
		var startCmd, endCmd tea.Cmd
		m.startInput, startCmd = m.startInput.Update(msg)
		m.endInput, endCmd = m.endInput.Update(msg)

		return m, tea.Batch(startCmd, endCmd)
	}

	return m, nil
}

func (m TimeframePicker) updatePresets(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.selected = max(m.selected-1, m.minFrame)
	case tea.KeyDown:
		m.selected = min(m.selected+1, TimeframeCustom)
	case tea.KeyEnter:
		switch m.selected {
		case TimeframeCustom:
			m.custom = true
			m.onEnd = false
			m.endInput.Blur()

			return m, m.startInput.Focus()
		case TimeframeAll:
			return m, selected(TimeframeSelectedMsg{All: true})
		}

		start, end := timeframeToDateRange(m.selected, m.now().In(m.loc))
		start, end = normalizeDateRange(start, end, m.loc)

		return m, selected(TimeframeSelectedMsg{Start: start, End: end})
	}

	return m, nil
}

func (m TimeframePicker) handlesKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyEnter, tea.KeyEsc:
		return true
	}

	return false
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.custom = false
		m.err = nil

		return m, nil
	case tea.KeyEnter:
		start, end, err := m.customRange()
		m.err = err

		if err != nil {
			return m, nil
		}

		return m, selected(TimeframeSelectedMsg{Start: start, End: end})
	}

	m.onEnd = !m.onEnd
	if m.onEnd {
		m.startInput.Blur()
		return m, m.endInput.Focus()
	}

	m.endInput.Blur()

	return m, m.startInput.Focus()
}

func (m TimeframePicker) customRange() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(m.startInput.Value()), m.loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date (YYYY-MM-DD)")
	}

	end, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(m.endInput.Value()), m.loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date (YYYY-MM-DD)")
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end date is before start date")
	}

	start, end = normalizeDateRange(start, end, m.loc)

	return start, end, nil
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) View() string {
	var sb strings.Builder

	if m.custom {
		sb.WriteString("Custom range:\n\n")
		sb.WriteString(m.startInput.View() + "\n")
		sb.WriteString(m.endInput.View() + "\n\n")
		sb.WriteString("(Enter to confirm, Tab to switch, Esc to go back)")
	} else {
		sb.WriteString("Timeframe:\n\n")

		for tf := m.minFrame; tf <= TimeframeCustom; tf++ {
			cursor := " "
			if tf == m.selected {
				cursor = ">"
			}

			fmt.Fprintf(&sb, "%s %s\n", cursor, tf)
		}

		sb.WriteString("\n(Enter to select, Esc to go back)")
	}

	if m.err != nil {
		sb.WriteString("\n\n" + errorStyle("Error: "+m.err.Error()))
	}

	return sb.String()
}

// IsSelecting reports whether the preset list is showing.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

// Reset goes back to the preset list with nothing typed.
func (m *TimeframePicker) Reset() {
	m.custom = false
	m.selected = m.minFrame
	m.onEnd = false
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
