package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/duo/internal/report"
)

const defaultWidth = 100

type SummaryModel struct {
	CommonModel
	reports *report.Service

	loading  bool
	spinner  spinner.Model
	viewport viewport.Model
	markdown string
	style    string
	err      error
}

// NewSummaryModel builds the summary view. style is a glamour standard style
// name.
func NewSummaryModel(reports *report.Service, style string) SummaryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return SummaryModel{
		reports:  reports,
		style:    style,
		loading:  true,
		spinner:  s,
		viewport: viewport.New(defaultWidth, 25),
	}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh | ↑/↓: scroll" }

func (m SummaryModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.markdown = msg.markdown
			m.render()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-6, 5)
		m.render()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}
	}

	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m *SummaryModel) render() {
	if m.markdown == "" {
		return
	}

	out, err := report.RenderStyle(m.markdown, m.viewport.Width, m.style)
	if err != nil {
		out = m.markdown
	}

	m.viewport.SetContent(out)
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Computing balances...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	return lipgloss.NewStyle().Padding(1).Render(m.viewport.View())
}

type summaryMsg struct {
	markdown string
	err      error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		s, err := m.reports.Summary(ctx)
		if err != nil {
			return summaryMsg{err: err}
		}

		return summaryMsg{markdown: report.Markdown(s)}
	}
}
