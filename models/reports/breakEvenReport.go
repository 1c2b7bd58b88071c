package reports

import (
	"github.com/rengganislabs/ledger_backend/models"
	"github.com/shopspring/decimal"
)

// BreakEvenResponse is the lifetime capital-recovery report, computed over
// the entire unfiltered ledgers. CapitalOutstanding keeps its sign: a
// negative value means the business has recovered all contributed capital
// and the magnitude is surplus profit, not remaining exposure.
type BreakEvenResponse struct {
	TotalCapitalContributed int64 `json:"total_capital_contributed"`

	LifetimeRevenue int64 `json:"lifetime_revenue"`
	LifetimeCogs    int64 `json:"lifetime_cogs"`
	LifetimeOpex    int64 `json:"lifetime_opex"`
	// LifetimeExpense is every expense row regardless of bucket; a
	// cross-check figure against the source sheet.
	LifetimeExpense int64 `json:"lifetime_expense"`

	CumulativeNetProfit int64 `json:"cumulative_net_profit"`
	CapitalOutstanding  int64 `json:"capital_outstanding"`
	CapitalRecovered    bool  `json:"capital_recovered"`

	// RecoveryPercentage is cumulative net profit over contributed capital
	// as a percentage; zero when no capital has been contributed.
	RecoveryPercentage decimal.Decimal `json:"recovery_percentage"`
}

// ComputeBreakEvenReport runs the P&L classification over the whole
// ledgers with no period filter. Records whose date never parsed are
// handled per the lifetime date policy (dropped by default).
func ComputeBreakEvenReport(set models.LedgerSet, rules models.RuleSet) *BreakEvenResponse {
	resp := &BreakEvenResponse{}
	drop := rules.LifetimeDatePolicy == models.DateFallbackDropRecord

	for _, rec := range set.Capital {
		if drop && !rec.DateParsed {
			continue
		}
		resp.TotalCapitalContributed += rec.Amount
	}

	for _, rec := range set.Revenue {
		if drop && !rec.DateParsed {
			continue
		}
		resp.LifetimeRevenue += rec.Amount
	}

	for _, rec := range set.Expense {
		if drop && !rec.DateParsed {
			continue
		}
		resp.LifetimeExpense += rec.Amount
		switch rules.ProfitBucket(rec.Category) {
		case models.ExpenseBucketCogs:
			resp.LifetimeCogs += rec.Amount
		case models.ExpenseBucketOpex:
			resp.LifetimeOpex += rec.Amount
		}
	}

	resp.CumulativeNetProfit = resp.LifetimeRevenue - resp.LifetimeCogs - resp.LifetimeOpex
	resp.CapitalOutstanding = resp.TotalCapitalContributed - resp.CumulativeNetProfit
	resp.CapitalRecovered = resp.CapitalOutstanding <= 0

	if resp.TotalCapitalContributed > 0 {
		resp.RecoveryPercentage = decimal.NewFromInt(resp.CumulativeNetProfit).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(resp.TotalCapitalContributed)).
			Round(2)
	} else {
		resp.RecoveryPercentage = decimal.Zero
	}

	return resp
}
