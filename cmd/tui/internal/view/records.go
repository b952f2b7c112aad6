package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

type recordsState int

const (
	recordsStateBrowse recordsState = iota
	recordsStateEdit
	recordsStateVoid
)

var kindFilters = []ledger.Kind{"", ledger.KindIncome, ledger.KindExpense, ledger.KindTransfer}

type RecordsModel struct {
	CommonModel
	records *record.Service
	actor   string

	state recordsState
	table table.Model
	txs   []ledger.Transaction
	form  *huh.Form

	kindIdx   int
	personIdx int
	dateIdx   int

	filter  record.Filter
	loading bool
	err     error
	status  string

	// Form bindings live behind a pointer so copies of the model share them.
	fields *editFields
}

type editFields struct {
	detail   string
	category string
	amount   string
	method   string
	shareA   string
	confirm  bool
}

func NewRecordsModel(records *record.Service, actor string) RecordsModel {
	columns := []table.Column{
		{Title: "Date", Width: 11},
		{Title: "Kind", Width: 9},
		{Title: "Who", Width: 18},
		{Title: "Amount", Width: 13},
		{Title: "Category", Width: 14},
		{Title: "Detail", Width: 30},
		{Title: "Split", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return RecordsModel{
		records: records,
		actor:   actor,
		table:   t,
		loading: true,
	}
}

func (m RecordsModel) Title() string { return "Records" }
func (m RecordsModel) ShortHelp() string {
	if m.state != recordsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | x: void | k: kind | p: person | d: date | v: voided | r: refresh"
}

func (m RecordsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRecordsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case recordSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = recordsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case recordsStateBrowse:
		return m.updateBrowse(msg)
	case recordsStateEdit, recordsStateVoid:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m RecordsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEdit()
		case "x":
			return m.enterVoid()
		case "k":
			m.kindIdx = (m.kindIdx + 1) % len(kindFilters)
			m.applyFilter()

			return m, m.loadCmd()
		case "p":
			m.personIdx = (m.personIdx + 1) % (len(m.records.Participants()) + 1)
			m.applyFilter()

			return m, m.loadCmd()
		case "d":
			m.dateIdx = (m.dateIdx + 1) % 3
			m.applyFilter()

			return m, m.loadCmd()
		case "v":
			m.filter.IncludeVoided = !m.filter.IncludeVoided
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecordsModel) selected() (ledger.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return ledger.Transaction{}, false
	}

	return m.txs[idx], true
}

func (m RecordsModel) enterEdit() (tea.Model, tea.Cmd) {
	tx, ok := m.selected()
	if !ok || tx.Voided {
		return m, nil
	}

	m.fields = &editFields{
		detail:   tx.Detail,
		category: tx.Category,
		amount:   tx.AmountOriginal.String(),
		method:   tx.PaymentMethod,
		shareA:   strconv.Itoa(tx.ShareA),
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("detail").
			Title("Detail").
			Value(&m.fields.detail).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("detail cannot be empty")
				}
				return nil
			}),
		huh.NewInput().
			Key("amount").
			Title(fmt.Sprintf("Amount (%s)", tx.Currency)).
			Value(&m.fields.amount).
			Validate(validateAmount),
	}

	if tx.Kind != ledger.KindTransfer {
		fields = append(fields,
			huh.NewInput().Key("category").Title("Category").Value(&m.fields.category),
			huh.NewInput().Key("method").Title("Payment method").Value(&m.fields.method),
		)
	}

	if tx.SharedExpense() {
		fields = append(fields, huh.NewInput().
			Key("share_a").
			Title(fmt.Sprintf("Share of %s (%%)", m.records.Participants().A())).
			Value(&m.fields.shareA).
			Validate(validateShare))
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
	m.state = recordsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m RecordsModel) enterVoid() (tea.Model, tea.Cmd) {
	tx, ok := m.selected()
	if !ok || tx.Voided {
		return m, nil
	}

	m.fields = &editFields{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Void %q?", tx.Detail)).
				Description("Voided records stay in the sheet but no longer count.").
				Affirmative("Void").
				Negative("Keep").
				Value(&m.fields.confirm),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = recordsStateVoid
	m.table.Blur()

	return m, m.form.Init()
}

func (m RecordsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = recordsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == recordsStateVoid {
		if !m.fields.confirm {
			m.state = recordsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.voidCmd()
	}

	return m, m.saveCmd()
}

func (m RecordsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading records...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	dateLabels := []string{"All Time", "This Month", "Last Month"}

	voided := "hidden"
	if m.filter.IncludeVoided {
		voided = "shown"
	}

	header := fmt.Sprintf(
		"Filter: [k] Kind: %s | [p] Person: %s | [d] Date: %s | [v] Voided: %s",
		activeStyle(cmpLabel(string(kindFilters[m.kindIdx]), "All")),
		activeStyle(cmpLabel(m.filter.Person, "All")),
		activeStyle(dateLabels[m.dateIdx]),
		activeStyle(voided),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != recordsStateBrowse && m.form != nil {
		title := "Edit Record"
		if m.state == recordsStateVoid {
			title = "Void Record"
		}

		tx, _ := m.selected()

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s %s\n\n%s", title, FormatDate(tx.Date), tx.ID, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func cmpLabel(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

func (m *RecordsModel) applyFilter() {
	m.filter.Kind = kindFilters[m.kindIdx]

	m.filter.Person = ""
	if m.personIdx > 0 {
		m.filter.Person = m.records.Participants()[m.personIdx-1]
	}

	var tf Timeframe

	switch m.dateIdx {
	case 1:
		tf = TimeframeThisMonth
	case 2:
		tf = TimeframeLastMonth
	default:
		m.filter.From, m.filter.To = nil, nil
		return
	}

	loc := m.records.Location()
	s, e := timeframeToDateRange(tf, time.Now().In(loc))
	s, e = normalizeDateRange(s, e, loc)
	m.filter.From, m.filter.To = &s, &e
}

func (m *RecordsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			kindLabel(tx),
			who(tx),
			FormatAmount(tx.AmountBase),
			tx.Category,
			tx.Detail,
			split(tx),
		})
	}

	m.table.SetRows(rows)
}

func kindLabel(tx ledger.Transaction) string {
	if tx.Voided {
		return "(" + string(tx.Kind) + ")"
	}

	return string(tx.Kind)
}

func who(tx ledger.Transaction) string {
	if tx.Kind == ledger.KindTransfer {
		return tx.OriginPerson + " → " + tx.DestPerson
	}

	return tx.Person
}

func split(tx ledger.Transaction) string {
	if !tx.IsShared || tx.Kind != ledger.KindExpense {
		return ""
	}

	return fmt.Sprintf("%d/%d", tx.ShareA, tx.ShareB)
}

func validateAmount(s string) error {
	d, ok := ledger.ParseDecimal(s)
	if !ok || !d.IsPositive() {
		return fmt.Errorf("enter a positive amount")
	}

	return nil
}

func validateShare(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return fmt.Errorf("enter a percentage between 0 and 100")
	}

	return nil
}

// Messages

type loadRecordsMsg struct {
	txs []ledger.Transaction
	err error
}

func (m RecordsModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		snap, err := m.records.Refresh(ctx)
		if err != nil {
			return loadRecordsMsg{err: err}
		}

		return loadRecordsMsg{txs: record.History(record.Apply(snap.Transactions, filter))}
	}
}

type recordSavedMsg struct {
	status string
	err    error
}

func (m RecordsModel) saveCmd() tea.Cmd {
	tx, ok := m.selected()
	if !ok {
		return nil
	}

	fields := *m.fields
	params := record.EditParams{
		Detail: new(fields.detail),
		Editor: m.actor,
	}

	if amount, ok := ledger.ParseDecimal(fields.amount); ok && !amount.Equal(tx.AmountOriginal) {
		params.Amount = &amount
	}

	if tx.Kind != ledger.KindTransfer {
		params.Category = new(fields.category)
		params.PaymentMethod = new(fields.method)
	}

	if tx.SharedExpense() {
		if a, err := strconv.Atoi(strings.TrimSpace(fields.shareA)); err == nil {
			params.ShareA = &a
			params.ShareB = new(100 - a)
		}
	}

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		if _, err := m.records.Edit(ctx, tx.ID, params); err != nil {
			return recordSavedMsg{err: err}
		}

		return recordSavedMsg{status: "Saved."}
	}
}

func (m RecordsModel) voidCmd() tea.Cmd {
	tx, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		if _, err := m.records.Void(ctx, tx.ID, m.actor); err != nil {
			return recordSavedMsg{err: err}
		}

		return recordSavedMsg{status: fmt.Sprintf("Voided %s.", tx.Detail)}
	}
}
