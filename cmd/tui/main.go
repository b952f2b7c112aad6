package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/duo/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/duo/internal/app"
	"github.com/MrJamesThe3rd/duo/internal/config"
)

const logFile = "duo-tui.log"

type model struct {
	app   *app.App
	actor string
	style string

	currentView View
	width       int
	height      int

	registerView view.RegisterModel
	recordsView  view.RecordsModel
	summaryView  view.SummaryModel
	importView   view.ImportModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewRegister View = 1
	ViewRecords  View = 2
	ViewSummary  View = 3
	ViewImport   View = 4
	ViewExport   View = 5
)

func initialModel(a *app.App, style string) model {
	actor := a.Config.Actor()

	return model{
		app:          a,
		actor:        actor,
		style:        style,
		currentView:  ViewMenu,
		registerView: view.NewRegisterModel(a.Records, a.Matching, a.Config.Ledger.PaymentMethods, actor),
		recordsView:  view.NewRecordsModel(a.Records, actor),
		summaryView:  view.NewSummaryModel(a.Reports, style),
		importView:   view.NewImportModel(a.Imports, actor),
		exportView:   view.NewExportModel(a.Reports, a.Archive, a.Records.Location()),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewRecords:
		var newModel tea.Model
		newModel, cmd = m.recordsView.Update(msg)
		m.recordsView = newModel.(view.RecordsModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.app

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewRegister
		m.registerView = view.NewRegisterModel(a.Records, a.Matching, a.Config.Ledger.PaymentMethods, m.actor)

		return m, m.registerView.Init()
	case "2":
		m.currentView = ViewRecords
		m.recordsView = view.NewRecordsModel(a.Records, m.actor)

		return m, tea.Batch(m.recordsView.Init(), m.resize())
	case "3":
		m.currentView = ViewSummary
		m.summaryView = view.NewSummaryModel(a.Reports, m.style)

		return m, tea.Batch(m.summaryView.Init(), m.resize())
	case "4":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(a.Imports, m.actor)

		return m, m.importView.Init()
	case "5":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(a.Reports, a.Archive, a.Records.Location())

		return m, m.exportView.Init()
	}

	return m, nil
}

// resize replays the last window size to a freshly built view.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	return func() tea.Msg { return size }
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewRegister:
		return m.registerView
	case ViewRecords:
		return m.recordsView
	case ViewSummary:
		return m.summaryView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Duo TUI (%s)\n\n", m.actor) +
				"1. Register\n" +
				"2. Records\n" +
				"3. Summary\n" +
				"4. Import CSV\n" +
				"5. Export CSV\n\n" +
				"q. Quit",
		)
	}

	v := m.current()
	if v == nil {
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(v.Title())
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(1).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, v.View(), help)
}

func main() {
	_ = godotenv.Load()

	f, err := tea.LogToFile(logFile, "")
	if err == nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		os.Exit(1)
	}

	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	p := tea.NewProgram(initialModel(a, style), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		_ = a.Close()
		os.Exit(1)
	}

	if err := a.Close(); err != nil {
		slog.Error("failed to close", "error", err)
	}
}
