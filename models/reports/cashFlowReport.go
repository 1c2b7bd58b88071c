package reports

import (
	"github.com/rengganislabs/ledger_backend/models"
)

// CashFlowResponse answers "what cash moved" for the window. Its expense
// split is the cash view: capex vs everything else, so opex_cash also
// contains COGS-bucketed spend and is deliberately not the P&L opex.
type CashFlowResponse struct {
	CashIn    int64 `json:"cash_in"`
	CapitalIn int64 `json:"capital_in"`

	Capex    int64 `json:"capex"`
	OpexCash int64 `json:"opex_cash"`
	CashOut  int64 `json:"cash_out"`

	NetCashFlow int64 `json:"net_cash_flow"`

	CapexBreakdown []CategoryTotal `json:"capex_breakdown"`
}

// ComputeCashFlow aggregates already period-filtered records.
//
//	cashIn      = revenue + capital contributions
//	cashOut     = capex + opexCash
//	netCashFlow = cashIn - cashOut
func ComputeCashFlow(revenueTotal int64, expenses []models.ExpenseRecord, capital []models.CapitalRecord, rules models.RuleSet) *CashFlowResponse {
	resp := &CashFlowResponse{}

	for _, rec := range capital {
		resp.CapitalIn += rec.Amount
	}
	resp.CashIn = revenueTotal + resp.CapitalIn

	capexTotals := map[string]int64{}
	for _, rec := range expenses {
		switch rules.CashBucket(rec.Category) {
		case models.CashFlowBucketCapex:
			resp.Capex += rec.Amount
			capexTotals[rec.Category] += rec.Amount
		default:
			resp.OpexCash += rec.Amount
		}
	}

	resp.CashOut = resp.Capex + resp.OpexCash
	resp.NetCashFlow = resp.CashIn - resp.CashOut
	resp.CapexBreakdown = breakdown(capexTotals)

	return resp
}
