package reports

import (
	"sort"

	"github.com/rengganislabs/ledger_backend/models"
	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// ProfitAndLossResponse carries the P&L view of the window. Negative
// profit is a valid result and is surfaced as-is, never clamped.
type ProfitAndLossResponse struct {
	Revenue        int64 `json:"revenue"`
	RevenueOnline  int64 `json:"revenue_online"`
	RevenueOffline int64 `json:"revenue_offline"`

	OnlineShare  decimal.Decimal `json:"online_share"`
	OfflineShare decimal.Decimal `json:"offline_share"`

	Cogs        int64 `json:"cogs"`
	GrossProfit int64 `json:"gross_profit"`
	Opex        int64 `json:"opex"`
	NetProfit   int64 `json:"net_profit"`

	CogsBreakdown []CategoryTotal `json:"cogs_breakdown"`
	OpexBreakdown []CategoryTotal `json:"opex_breakdown"`
}

// ComputeProfitAndLoss aggregates already period-filtered records.
//
//	grossProfit = revenue - cogs
//	netProfit   = grossProfit - opex
//
// CAPEX-classified records never enter opex here; they belong to the
// cash-flow view.
func ComputeProfitAndLoss(revenue []models.RevenueRecord, expenses []models.ExpenseRecord, rules models.RuleSet) *ProfitAndLossResponse {
	resp := &ProfitAndLossResponse{}

	for _, rec := range revenue {
		resp.Revenue += rec.Amount
		switch rules.Channel(rec.Channel) {
		case models.SalesChannelOffline:
			resp.RevenueOffline += rec.Amount
		default:
			resp.RevenueOnline += rec.Amount
		}
	}
	resp.OnlineShare = share(resp.RevenueOnline, resp.Revenue)
	resp.OfflineShare = share(resp.RevenueOffline, resp.Revenue)

	cogsTotals := map[string]int64{}
	opexTotals := map[string]int64{}
	for _, rec := range expenses {
		switch rules.ProfitBucket(rec.Category) {
		case models.ExpenseBucketCogs:
			resp.Cogs += rec.Amount
			cogsTotals[rec.Category] += rec.Amount
		case models.ExpenseBucketOpex:
			resp.Opex += rec.Amount
			opexTotals[rec.Category] += rec.Amount
		case models.ExpenseBucketCapex:
			// excluded from P&L entirely
		}
	}

	resp.GrossProfit = resp.Revenue - resp.Cogs
	resp.NetProfit = resp.GrossProfit - resp.Opex
	resp.CogsBreakdown = breakdown(cogsTotals)
	resp.OpexBreakdown = breakdown(opexTotals)

	return resp
}

// share is part/total as a percentage; zero when the total is zero.
func share(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2)
}

// breakdown emits per-category totals sorted by amount descending, then
// category name for a stable order.
func breakdown(totals map[string]int64) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		out = append(out, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
