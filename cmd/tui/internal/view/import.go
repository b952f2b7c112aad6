package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/duo/internal/importer"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFormatSelect importState = iota
	importStateFilePick
	importStatePreview
	importStateImporting
	importStateResult
)

var importFormats = []importer.Format{importer.FormatAuto, importer.FormatCanonical, importer.FormatLegacy}

type ImportModel struct {
	CommonModel
	importService *importer.Service
	actor         string

	state          importState
	filePicker     filepicker.Model
	selectedFormat importer.Format
	formatCursor   int

	path    string
	preview *importer.Result

	result       *record.ImportResult
	rejectedList list.Model

	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, actor string) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		actor:         actor,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "Enter: import | Esc: cancel"
	case importStateResult:
		return "↑/↓: scroll rejections | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateFormatSelect:
			return m.updateFormatSelect(msg)
		case importStatePreview:
			if msg.Type == tea.KeyEnter {
				m.state = importStateImporting
				m.status = fmt.Sprintf("Importing %d rows from %s...", len(m.preview.Rows), m.path)

				return m, m.importCmd(m.path)
			}

			return m, nil
		case importStateResult:
			var cmd tea.Cmd
			m.rejectedList, cmd = m.rejectedList.Update(msg)

			return m, cmd
		}

	case previewMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.preview = msg.result
		m.state = importStatePreview

		return m, nil

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.result = msg.result
		m.status = fmt.Sprintf("Imported %d, skipped %d, rejected %d.",
			msg.result.Imported, msg.result.Skipped, len(msg.result.Rejected))

		items := make([]list.Item, len(msg.result.Rejected))
		for i, r := range msg.result.Rejected {
			items[i] = rejectionItem{rejection: r}
		}

		m.rejectedList = list.New(items, rejectionDelegate{}, 80, 15)
		m.rejectedList.Title = "Rejected rows"
		m.rejectedList.SetShowStatusBar(false)
		m.rejectedList.SetFilteringEnabled(false)
		m.rejectedList.SetShowHelp(false)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.status = fmt.Sprintf("Reading %s...", path)
		m.state = importStateImporting

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStatePreview, importStateResult:
		m.state = importStateFormatSelect
		m.preview = nil
		m.result = nil
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case tea.KeyDown:
		if m.formatCursor < len(importFormats)-1 {
			m.formatCursor++
		}
	case tea.KeyEnter:
		m.selectedFormat = importFormats[m.formatCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFormatSelect:
		return m.viewFormatSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedFormat, m.filePicker.View()),
		)
	case importStatePreview:
		return m.viewPreview()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewFormatSelect() string {
	s := "Select layout:\n\n"

	for i, f := range importFormats {
		cursor := " "
		if i == m.formatCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, f)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewPreview() string {
	s := fmt.Sprintf("%s\n\nLayout:   %s\nEncoding: %s\nRows:     %d\n\n",
		activeStyle(m.path), m.preview.Profile, m.preview.Charset, len(m.preview.Rows))
	s += "Rows whose ID already exists are skipped.\nPress Enter to import."

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	out := okStyle(m.status)
	if m.result != nil && len(m.result.Rejected) > 0 {
		out += "\n\n" + m.rejectedList.View()
	}

	return style.Render(out + "\n\n(Esc to go back)")
}

// Messages

type previewMsg struct {
	result *importer.Result
	err    error
}

type importResultMsg struct {
	result *record.ImportResult
	err    error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	format := m.selectedFormat

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewMsg{err: err}
		}
		defer f.Close()

		result, err := m.importService.Parse(format, f)
		if err != nil {
			return previewMsg{err: err}
		}

		return previewMsg{result: result}
	}
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	format := m.selectedFormat

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.importService.Import(ctx, format, f, m.actor)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

// Rejection list item

type rejectionItem struct {
	rejection record.Rejection
}

func (i rejectionItem) Title() string       { return fmt.Sprintf("line %d", i.rejection.Line) }
func (i rejectionItem) Description() string { return i.rejection.Err.Error() }
func (i rejectionItem) FilterValue() string { return "" }

type rejectionDelegate struct{}

func (d rejectionDelegate) Height() int                             { return 1 }
func (d rejectionDelegate) Spacing() int                            { return 0 }
func (d rejectionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rejectionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(rejectionItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%-8s %s", cursor, item.Title(), errorStyle(item.Description()))
}
