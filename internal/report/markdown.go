package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

// Markdown renders the summary as a markdown document.
func Markdown(s *Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Ledger summary\n\n_Generated %s_\n\n", s.GeneratedAt.Format(ledger.TimestampLayout))

	d := s.Dashboard
	sb.WriteString("## Dashboard\n\n")
	sb.WriteString("| Net balance | Income | Expense | Transfers |\n|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %s | %s | %s | %d |\n\n",
		ledger.FormatAmount(d.NetBalance), ledger.FormatAmount(d.Income), ledger.FormatAmount(d.Expense), d.Transfers)

	sb.WriteString("## Balances\n\n")
	sb.WriteString("| Person | Income | Expense | In | Out | Net |\n|---|---|---|---|---|---|\n")

	for _, p := range s.Participants {
		b := s.Balances[p]
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			p,
			ledger.FormatAmount(b.Income),
			ledger.FormatAmount(b.Expense),
			ledger.FormatAmount(b.TransfersIn),
			ledger.FormatAmount(b.TransfersOut),
			formatSigned(b.Net()),
		)
	}

	sb.WriteString("\n## Settlement\n\n")
	fmt.Fprintf(&sb, "Total shared: **%s**\n\n", ledger.FormatAmount(s.Settlement.TotalShared))

	sb.WriteString("| Person | Owed | Paid | Balance |\n|---|---|---|---|\n")

	for _, pos := range s.Settlement.Positions {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			pos.Person, ledger.FormatAmount(pos.Owed), ledger.FormatAmount(pos.Paid), formatSigned(pos.Balance))
	}

	sb.WriteString("\n")

	if len(s.Settlement.Transfers) == 0 {
		sb.WriteString("Everyone is settled.\n")
	}

	for _, t := range s.Settlement.Transfers {
		fmt.Fprintf(&sb, "- **%s** pays **%s** %s\n", t.From, t.To, ledger.FormatAmount(t.Amount))
	}

	writeTotals(&sb, "Top expense categories", s.Stats.TopCategories)
	writeTotals(&sb, "Expenses by payment method", s.Stats.ByPaymentMethod)

	if len(s.Stats.Monthly) > 0 {
		sb.WriteString("\n## Monthly\n\n| Period | Income | Expense | Transfers |\n|---|---|---|---|\n")

		for _, m := range s.Stats.Monthly {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				m.Period, ledger.FormatAmount(m.Income), ledger.FormatAmount(m.Expense), ledger.FormatAmount(m.Transfers))
		}
	}

	fmt.Fprintf(&sb, "\nShared expenses: %s, personal expenses: %s\n",
		ledger.FormatAmount(s.Stats.SharedExpense), ledger.FormatAmount(s.Stats.PersonalExpense))

	if s.Issues > 0 {
		fmt.Fprintf(&sb, "\n> %d values could not be read and were replaced by defaults.\n", s.Issues)
	}

	return sb.String()
}

func writeTotals(sb *strings.Builder, title string, totals []Total) {
	if len(totals) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n## %s\n\n| | Amount |\n|---|---|\n", title)

	for _, t := range totals {
		label := t.Label
		if label == "" {
			label = "(none)"
		}

		fmt.Fprintf(sb, "| %s | %s |\n", label, ledger.FormatAmount(t.Amount))
	}
}

func formatSigned(n int64) string {
	if n < 0 {
		return "-" + ledger.FormatAmount(-n)
	}

	return ledger.FormatAmount(n)
}

// Render formats markdown for the terminal, picking a style from the
// terminal background.
func Render(md string, width int) (string, error) {
	return render(md, glamour.WithAutoStyle(), glamour.WithWordWrap(width))
}

// RenderStyle is Render with a fixed glamour style such as "dark" or
// "light". Use it when the terminal cannot be queried.
func RenderStyle(md string, width int, style string) (string, error) {
	return render(md, glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
}

func render(md string, opts ...glamour.TermRendererOption) (string, error) {
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return out, nil
}
