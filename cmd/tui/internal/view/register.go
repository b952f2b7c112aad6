package view

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/matching"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

type registerState int

const (
	registerStateKind registerState = iota
	registerStateForm
	registerStateSaving
	registerStateResult
)

var registerKinds = []ledger.Kind{ledger.KindExpense, ledger.KindIncome, ledger.KindTransfer}

type RegisterModel struct {
	CommonModel
	records  *record.Service
	matching *matching.Service
	methods  []string
	actor    string

	state      registerState
	kindCursor int
	kind       ledger.Kind
	categories []string

	form   *huh.Form
	fields *registerFields

	status string
	err    error
}

type registerFields struct {
	person   string
	origin   string
	dest     string
	detail   string
	category string
	date     string
	amount   string
	currency string
	method   string
	shared   bool
	shareA   string
}

func NewRegisterModel(records *record.Service, matchSvc *matching.Service, methods []string, actor string) RegisterModel {
	return RegisterModel{
		records:  records,
		matching: matchSvc,
		methods:  methods,
		actor:    actor,
	}
}

func (m RegisterModel) Title() string { return "Register" }

func (m RegisterModel) ShortHelp() string {
	if m.state == registerStateKind {
		return "Esc: back | Enter: select"
	}

	return "Esc: cancel | Enter/Tab: navigate form"
}

func (m RegisterModel) Init() tea.Cmd {
	return m.loadCategoriesCmd()
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesMsg:
		m.categories = msg.categories
		return m, nil

	case registerResultMsg:
		m.state = registerStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Saved %s %s (%s).", msg.tx.Kind, FormatAmount(msg.tx.AmountBase), msg.tx.Detail)

		return m, m.loadCategoriesCmd()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}
	}

	switch m.state {
	case registerStateKind:
		return m.updateKind(msg)
	case registerStateForm:
		return m.updateForm(msg)
	case registerStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			m.state = registerStateKind
			m.status = ""
			m.err = nil
		}
	}

	return m, nil
}

func (m RegisterModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case registerStateForm, registerStateResult:
		m.state = registerStateKind
		m.form = nil
		m.status = ""
		m.err = nil

		return m, nil
	}

	return m, Back
}

func (m RegisterModel) updateKind(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.kindCursor > 0 {
			m.kindCursor--
		}
	case tea.KeyDown:
		if m.kindCursor < len(registerKinds)-1 {
			m.kindCursor++
		}
	case tea.KeyEnter:
		m.kind = registerKinds[m.kindCursor]
		m.form = m.buildForm()
		m.state = registerStateForm

		return m, m.form.Init()
	}

	return m, nil
}

func (m RegisterModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = registerStateSaving
	m.status = "Saving..."

	return m, m.saveCmd()
}

func (m *RegisterModel) buildForm() *huh.Form {
	people := m.records.Participants()
	names := []string(people)
	today := time.Now().In(m.records.Location()).Format(time.DateOnly)

	m.fields = &registerFields{
		person:   m.actor,
		origin:   m.actor,
		date:     today,
		currency: m.records.BaseCurrency(),
		shared:   m.kind == ledger.KindExpense,
		shareA:   "50",
	}

	if len(m.methods) > 0 {
		m.fields.method = m.methods[0]
	}

	for _, p := range people {
		if p != m.actor {
			m.fields.dest = p
			break
		}
	}

	var who []huh.Field

	if m.kind == ledger.KindTransfer {
		who = append(who,
			huh.NewSelect[string]().Key("origin").Title("From").Options(huh.NewOptions(names...)...).Value(&m.fields.origin),
			huh.NewSelect[string]().Key("dest").Title("To").Options(huh.NewOptions(names...)...).Value(&m.fields.dest),
		)
	} else {
		who = append(who,
			huh.NewSelect[string]().Key("person").Title("Person").Options(huh.NewOptions(names...)...).Value(&m.fields.person),
		)
	}

	details := []huh.Field{
		huh.NewInput().Key("detail").Title("Detail").Value(&m.fields.detail).Validate(required("detail")),
		huh.NewInput().Key("date").Title("Date").Placeholder("YYYY-MM-DD").Value(&m.fields.date).Validate(validateDate),
		huh.NewInput().Key("amount").Title("Amount").Value(&m.fields.amount).Validate(validateAmount),
		huh.NewInput().Key("currency").Title("Currency").Value(&m.fields.currency).Validate(validateCurrency),
	}

	if m.kind != ledger.KindTransfer {
		details = append(details,
			huh.NewInput().Key("category").Title("Category").
				Description("Leave empty to use the suggested category").
				Suggestions(m.categories).
				Value(&m.fields.category),
			huh.NewSelect[string]().Key("method").Title("Payment method").
				Options(huh.NewOptions(m.methods...)...).
				Value(&m.fields.method),
		)
	}

	groups := []*huh.Group{huh.NewGroup(who...), huh.NewGroup(details...)}

	if m.kind == ledger.KindExpense {
		fields := m.fields
		groups = append(groups,
			huh.NewGroup(huh.NewConfirm().Key("shared").Title("Shared expense?").Value(&m.fields.shared)),
			huh.NewGroup(
				huh.NewInput().Key("share_a").
					Title(fmt.Sprintf("Share of %s (%%)", people.A())).
					Value(&m.fields.shareA).
					Validate(validateShare),
			).WithHideFunc(func() bool { return !fields.shared }),
		)
	}

	return huh.NewForm(groups...).WithWidth(50).WithShowHelp(false)
}

func (m RegisterModel) View() string {
	switch m.state {
	case registerStateKind:
		s := "What are you registering?\n\n"

		for i, k := range registerKinds {
			cursor := " "
			if i == m.kindCursor {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %s\n", cursor, k)
		}

		return lipgloss.NewStyle().Padding(2).Render(s)
	case registerStateForm:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("New %s\n\n%s", activeStyle(string(m.kind)), m.form.View()),
		)
	case registerStateSaving:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case registerStateResult:
		status := okStyle(m.status)
		if m.err != nil {
			status = errorStyle(m.status)
		}

		return lipgloss.NewStyle().Padding(2).Render(status + "\n\n(Enter for another, Esc to go back)")
	}

	return ""
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}

		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func validateCurrency(s string) error {
	if !ledger.KnownCurrency(strings.TrimSpace(s)) {
		return fmt.Errorf("unknown currency code")
	}

	return nil
}

// Messages

type categoriesMsg struct {
	categories []string
}

func (m RegisterModel) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		snap, err := m.records.Refresh(ctx)
		if err != nil {
			return categoriesMsg{}
		}

		var categories []string

		for _, t := range snap.Active() {
			if t.Category != "" && !slices.Contains(categories, t.Category) {
				categories = append(categories, t.Category)
			}
		}

		slices.Sort(categories)

		return categoriesMsg{categories: categories}
	}
}

type registerResultMsg struct {
	tx  *ledger.Transaction
	err error
}

func (m RegisterModel) saveCmd() tea.Cmd {
	f := *m.fields
	kind := m.kind

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(f.date), m.records.Location())
		if err != nil {
			return registerResultMsg{err: err}
		}

		amount, ok := ledger.ParseDecimal(f.amount)
		if !ok {
			return registerResultMsg{err: fmt.Errorf("invalid amount %q", f.amount)}
		}

		params := record.CreateParams{
			Kind:          kind,
			Detail:        f.detail,
			Category:      f.category,
			Date:          date,
			Amount:        amount,
			Currency:      f.currency,
			PaymentMethod: f.method,
			Actor:         m.actor,
		}

		if kind == ledger.KindTransfer {
			params.OriginPerson, params.DestPerson = f.origin, f.dest
		} else {
			params.Person = f.person
			params.Category = m.category(ctx, f.detail, f.category)
		}

		if kind == ledger.KindExpense && f.shared {
			a, _ := strconv.Atoi(strings.TrimSpace(f.shareA))
			params.IsShared, params.ShareA, params.ShareB = true, a, 100-a
		}

		tx, err := m.records.Create(ctx, params)
		if err != nil {
			return registerResultMsg{err: err}
		}

		return registerResultMsg{tx: tx}
	}
}

// category returns the entered category, or the suggestion for detail when
// none was entered. A new detail teaches the suggestion service its category.
func (m RegisterModel) category(ctx context.Context, detail, entered string) string {
	suggested, err := m.matching.Suggest(ctx, detail)
	if err != nil {
		suggested = ""
	}

	entered = strings.TrimSpace(entered)
	if entered == "" {
		return suggested
	}

	if suggested == "" {
		_ = m.matching.Learn(ctx, detail, entered)
	}

	return entered
}
