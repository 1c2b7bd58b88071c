package reports

import (
	"time"

	"github.com/rengganislabs/ledger_backend/models"
)

// Window is an inclusive date interval compared at day granularity: the
// start is floored to start-of-day and the end ceiled to end-of-day, so a
// record dated anywhere on a boundary day is inside the window.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start, end time.Time) Window {
	return Window{
		Start: models.StartOfDay(start),
		End:   models.EndOfDay(end),
	}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days is the number of whole calendar days between the window bounds
// (start and end on the same day is 0).
func (w Window) Days() int {
	return int(models.StartOfDay(w.End).Sub(models.StartOfDay(w.Start)) / (24 * time.Hour))
}

// PeriodReportResponse is the windowed report: P&L, cash flow and the
// revenue trend, recomputed from scratch on every call. Plain data, no
// behavior.
type PeriodReportResponse struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`

	ProfitAndLoss *ProfitAndLossResponse `json:"profit_and_loss"`
	CashFlow      *CashFlowResponse      `json:"cash_flow"`
	RevenueTrend  *RevenueTrendResponse  `json:"revenue_trend"`

	LedgerVersion string `json:"ledger_version"`
}

// ComputePeriodReport is the pure windowed entry point: no I/O, no hidden
// state. Caching layers wrap it, they are not part of its contract.
func ComputePeriodReport(set models.LedgerSet, w Window, rules models.RuleSet) *PeriodReportResponse {
	now := time.Now().In(rules.Location())

	revenue := filterRevenue(set.Revenue, w, rules.PeriodDatePolicy, now)
	expenses := filterExpenses(set.Expense, w, rules.PeriodDatePolicy, now)
	capital := filterCapital(set.Capital, w, rules.PeriodDatePolicy, now)

	pl := ComputeProfitAndLoss(revenue, expenses, rules)

	return &PeriodReportResponse{
		FromDate:      w.Start.Format("2006-01-02"),
		ToDate:        w.End.Format("2006-01-02"),
		ProfitAndLoss: pl,
		CashFlow:      ComputeCashFlow(pl.Revenue, expenses, capital, rules),
		RevenueTrend:  ComputeRevenueTrend(revenue, w, rules),
		LedgerVersion: set.Version,
	}
}

// effectiveDate resolves a record date under a fallback policy. The second
// return is false when the record must be dropped.
func effectiveDate(date time.Time, parsed bool, policy models.DateFallbackPolicy, now time.Time) (time.Time, bool) {
	if parsed {
		return date, true
	}
	if policy == models.DateFallbackDropRecord {
		return time.Time{}, false
	}
	return now, true
}

func filterRevenue(records []models.RevenueRecord, w Window, policy models.DateFallbackPolicy, now time.Time) []models.RevenueRecord {
	out := make([]models.RevenueRecord, 0, len(records))
	for _, rec := range records {
		d, keep := effectiveDate(rec.Date, rec.DateParsed, policy, now)
		if !keep || !w.Contains(d) {
			continue
		}
		rec.Date = d
		rec.DateParsed = true
		out = append(out, rec)
	}
	return out
}

func filterExpenses(records []models.ExpenseRecord, w Window, policy models.DateFallbackPolicy, now time.Time) []models.ExpenseRecord {
	out := make([]models.ExpenseRecord, 0, len(records))
	for _, rec := range records {
		d, keep := effectiveDate(rec.Date, rec.DateParsed, policy, now)
		if !keep || !w.Contains(d) {
			continue
		}
		rec.Date = d
		rec.DateParsed = true
		out = append(out, rec)
	}
	return out
}

func filterCapital(records []models.CapitalRecord, w Window, policy models.DateFallbackPolicy, now time.Time) []models.CapitalRecord {
	out := make([]models.CapitalRecord, 0, len(records))
	for _, rec := range records {
		d, keep := effectiveDate(rec.Date, rec.DateParsed, policy, now)
		if !keep || !w.Contains(d) {
			continue
		}
		rec.Date = d
		rec.DateParsed = true
		out = append(out, rec)
	}
	return out
}
