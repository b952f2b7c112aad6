package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

const sourceTimeout = 15 * time.Second

// FormatAmount formats a base-currency amount the way the ledger displays it.
func FormatAmount(amount int64) string {
	if amount < 0 {
		return "-" + ledger.FormatAmount(-amount)
	}

	return ledger.FormatAmount(amount)
}

// FormatDate formats a record date as YYYY-MM-DD. Unparseable dates are
// shown as a dash.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return t.Format(time.DateOnly)
}

// SourceCtx returns a context with the standard timeout for row source calls.
func SourceCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sourceTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func okStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(s)
}
