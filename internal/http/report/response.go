package report

import (
	"time"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/report"
)

type balanceResponse struct {
	Person       string `json:"person"`
	Income       int64  `json:"income"`
	Expense      int64  `json:"expense"`
	TransfersIn  int64  `json:"transfers_in"`
	TransfersOut int64  `json:"transfers_out"`
	Net          int64  `json:"net"`
}

type positionResponse struct {
	Person  string `json:"person"`
	Owed    int64  `json:"owed"`
	Paid    int64  `json:"paid"`
	Balance int64  `json:"balance"`
}

type transferResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type settlementResponse struct {
	TotalShared int64              `json:"total_shared"`
	Positions   []positionResponse `json:"positions"`
	Transfers   []transferResponse `json:"transfers"`
}

type dashboardResponse struct {
	NetBalance int64 `json:"net_balance"`
	Income     int64 `json:"income"`
	Expense    int64 `json:"expense"`
	Transfers  int   `json:"transfers"`
}

type totalResponse struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type monthResponse struct {
	Period    string `json:"period"`
	Income    int64  `json:"income"`
	Expense   int64  `json:"expense"`
	Transfers int64  `json:"transfers"`
}

type statsResponse struct {
	TopCategories   []totalResponse `json:"top_categories"`
	ByPaymentMethod []totalResponse `json:"by_payment_method"`
	Monthly         []monthResponse `json:"monthly"`
	SharedExpense   int64           `json:"shared_expense"`
	PersonalExpense int64           `json:"personal_expense"`
}

type summaryResponse struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Balances    []balanceResponse  `json:"balances"`
	Settlement  settlementResponse `json:"settlement"`
	Dashboard   dashboardResponse  `json:"dashboard"`
	Issues      int                `json:"issues"`
}

func toSummaryResponse(s *report.Summary) summaryResponse {
	resp := summaryResponse{
		GeneratedAt: s.GeneratedAt,
		Balances:    make([]balanceResponse, 0, len(s.Participants)),
		Settlement:  toSettlementResponse(s.Settlement),
		Dashboard: dashboardResponse{
			NetBalance: s.Dashboard.NetBalance,
			Income:     s.Dashboard.Income,
			Expense:    s.Dashboard.Expense,
			Transfers:  s.Dashboard.Transfers,
		},
		Issues: s.Issues,
	}

	for _, p := range s.Participants {
		b := s.Balances[p]
		resp.Balances = append(resp.Balances, balanceResponse{
			Person:       p,
			Income:       b.Income,
			Expense:      b.Expense,
			TransfersIn:  b.TransfersIn,
			TransfersOut: b.TransfersOut,
			Net:          b.Net(),
		})
	}

	return resp
}

func toSettlementResponse(s ledger.Settlement) settlementResponse {
	resp := settlementResponse{
		TotalShared: s.TotalShared,
		Positions:   make([]positionResponse, 0, len(s.Positions)),
		Transfers:   make([]transferResponse, 0, len(s.Transfers)),
	}

	for _, p := range s.Positions {
		resp.Positions = append(resp.Positions, positionResponse(p))
	}

	for _, t := range s.Transfers {
		resp.Transfers = append(resp.Transfers, transferResponse(t))
	}

	return resp
}

func toStatsResponse(s report.Stats) statsResponse {
	resp := statsResponse{
		TopCategories:   toTotals(s.TopCategories),
		ByPaymentMethod: toTotals(s.ByPaymentMethod),
		Monthly:         make([]monthResponse, 0, len(s.Monthly)),
		SharedExpense:   s.SharedExpense,
		PersonalExpense: s.PersonalExpense,
	}

	for _, m := range s.Monthly {
		resp.Monthly = append(resp.Monthly, monthResponse(m))
	}

	return resp
}

func toTotals(totals []report.Total) []totalResponse {
	resp := make([]totalResponse, 0, len(totals))
	for _, t := range totals {
		resp = append(resp, totalResponse(t))
	}

	return resp
}
