package reports

import (
	"testing"
	"time"

	"github.com/rengganislabs/ledger_backend/models"
	"github.com/shopspring/decimal"
)

func testRules() models.RuleSet {
	r := models.DefaultRuleSet()
	r.Timezone = "UTC"
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePeriodReport_EndToEnd(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{Version: "abc123"}
	set.Revenue = models.NormalizeRevenueRows([]models.RawRow{
		{"Tanggal": "05/01/2025", "Channel Penjualan": "Online", "Nominal Omset": "100.000,00"},
		{"Tanggal": "06/01/2025", "Channel Penjualan": "Toko Offline", "Nominal Omset": "50.000,00"},
	}, rules)
	set.Expense = models.NormalizeExpenseRows([]models.RawRow{
		{"Tanggal": "05/01/2025", "Kategori Biaya": "Operasional", "Nominal Biaya": "30.000,00"},
	}, rules)

	w := NewWindow(day(2025, 1, 1), day(2025, 1, 31))
	report := ComputePeriodReport(set, w, rules)

	if report.FromDate != "2025-01-01" || report.ToDate != "2025-01-31" {
		t.Fatalf("window echo wrong: %s..%s", report.FromDate, report.ToDate)
	}
	if report.LedgerVersion != "abc123" {
		t.Fatalf("ledger version expected abc123, got %s", report.LedgerVersion)
	}

	pl := report.ProfitAndLoss
	if pl.Revenue != 150000 || pl.RevenueOnline != 100000 || pl.RevenueOffline != 50000 {
		t.Fatalf("revenue split wrong: %+v", pl)
	}
	if !pl.OnlineShare.Equal(decimal.RequireFromString("66.67")) {
		t.Fatalf("online share expected 66.67, got %s", pl.OnlineShare)
	}
	if !pl.OfflineShare.Equal(decimal.RequireFromString("33.33")) {
		t.Fatalf("offline share expected 33.33, got %s", pl.OfflineShare)
	}
	if pl.Cogs != 0 || pl.Opex != 30000 {
		t.Fatalf("expense buckets wrong: %+v", pl)
	}
	if pl.GrossProfit != 150000 || pl.NetProfit != 120000 {
		t.Fatalf("profit wrong: gross=%d net=%d", pl.GrossProfit, pl.NetProfit)
	}

	cf := report.CashFlow
	if cf.CashIn != 150000 || cf.CapitalIn != 0 {
		t.Fatalf("cash in wrong: %+v", cf)
	}
	if cf.Capex != 0 || cf.OpexCash != 30000 || cf.CashOut != 30000 {
		t.Fatalf("cash out wrong: %+v", cf)
	}
	if cf.NetCashFlow != 120000 {
		t.Fatalf("net cash flow expected 120000, got %d", cf.NetCashFlow)
	}

	trend := report.RevenueTrend
	if trend.Interval != TrendIntervalDaily {
		t.Fatalf("trend interval expected daily, got %s", trend.Interval)
	}
	expectedPoints := []TrendPoint{
		{Label: "05 Jan", Revenue: 100000},
		{Label: "06 Jan", Revenue: 50000},
	}
	if len(trend.Points) != len(expectedPoints) {
		t.Fatalf("expected %d trend points, got %d", len(expectedPoints), len(trend.Points))
	}
	for i, p := range expectedPoints {
		if trend.Points[i] != p {
			t.Fatalf("trend point %d expected %+v, got %+v", i, p, trend.Points[i])
		}
	}
}

func TestWindow_BoundaryDaysInclusive(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Revenue: []models.RevenueRecord{
			{Date: day(2025, 1, 1).Add(10 * time.Hour), DateParsed: true, Channel: "Online", Amount: 100},
			{Date: day(2025, 1, 31).Add(23 * time.Hour), DateParsed: true, Channel: "Online", Amount: 200},
			{Date: day(2024, 12, 31), DateParsed: true, Channel: "Online", Amount: 400},
			{Date: day(2025, 2, 1), DateParsed: true, Channel: "Online", Amount: 800},
		},
	}

	w := NewWindow(day(2025, 1, 1), day(2025, 1, 31))
	report := ComputePeriodReport(set, w, rules)

	// Both boundary-day records are in, both outside records are not.
	if report.ProfitAndLoss.Revenue != 300 {
		t.Fatalf("boundary filtering wrong: revenue=%d", report.ProfitAndLoss.Revenue)
	}
}

func TestComputePeriodReport_DateFallbackPolicies(t *testing.T) {
	rules := testRules()

	// A window around the current date so the current-date fallback lands
	// inside it.
	now := time.Now().UTC()
	w := NewWindow(now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))

	set := models.LedgerSet{
		Revenue: []models.RevenueRecord{
			{DateParsed: false, Channel: "Online", Amount: 500},
		},
	}

	rules.PeriodDatePolicy = models.DateFallbackCurrentDate
	if got := ComputePeriodReport(set, w, rules).ProfitAndLoss.Revenue; got != 500 {
		t.Fatalf("current-date policy expected 500, got %d", got)
	}

	rules.PeriodDatePolicy = models.DateFallbackDropRecord
	if got := ComputePeriodReport(set, w, rules).ProfitAndLoss.Revenue; got != 0 {
		t.Fatalf("drop-record policy expected 0, got %d", got)
	}
}

func TestComputePeriodReport_DualClassification(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Revenue: []models.RevenueRecord{
			{Date: day(2025, 1, 10), DateParsed: true, Channel: "Online", Amount: 1000},
		},
		Expense: []models.ExpenseRecord{
			// In both the COGS and CAPEX tables.
			{Date: day(2025, 1, 10), DateParsed: true, Category: "Modal Bahan Baku", Amount: 300},
			{Date: day(2025, 1, 11), DateParsed: true, Category: "Marketing", Amount: 100},
		},
	}

	w := NewWindow(day(2025, 1, 1), day(2025, 1, 31))
	report := ComputePeriodReport(set, w, rules)

	// P&L: the dual-listed category is COGS, never opex.
	pl := report.ProfitAndLoss
	if pl.Cogs != 300 || pl.Opex != 100 {
		t.Fatalf("P&L buckets wrong: cogs=%d opex=%d", pl.Cogs, pl.Opex)
	}
	if pl.NetProfit != 600 {
		t.Fatalf("net profit expected 600, got %d", pl.NetProfit)
	}

	// Cash view: the same record is a capital outflow.
	cf := report.CashFlow
	if cf.Capex != 300 || cf.OpexCash != 100 {
		t.Fatalf("cash buckets wrong: capex=%d opex_cash=%d", cf.Capex, cf.OpexCash)
	}
	if cf.CashOut != cf.Capex+cf.OpexCash {
		t.Fatalf("cash out identity broken: %+v", cf)
	}
	if cf.NetCashFlow != cf.CashIn-cf.CashOut {
		t.Fatalf("net cash flow identity broken: %+v", cf)
	}
}

func TestComputePeriodReport_NegativeProfitSurfaced(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Revenue: []models.RevenueRecord{
			{Date: day(2025, 1, 10), DateParsed: true, Channel: "Online", Amount: 100},
		},
		Expense: []models.ExpenseRecord{
			{Date: day(2025, 1, 10), DateParsed: true, Category: "Gaji", Amount: 900},
		},
	}

	w := NewWindow(day(2025, 1, 1), day(2025, 1, 31))
	pl := ComputePeriodReport(set, w, rules).ProfitAndLoss
	if pl.NetProfit != -800 {
		t.Fatalf("net profit expected -800, got %d", pl.NetProfit)
	}
}

func TestWindowDays(t *testing.T) {
	cases := []struct {
		start, end time.Time
		expected   int
	}{
		{day(2025, 1, 1), day(2025, 1, 1), 0},
		{day(2025, 1, 1), day(2025, 1, 31), 30},
		{day(2025, 1, 1), day(2025, 3, 2), 60},
		{day(2025, 1, 1), day(2025, 3, 3), 61},
	}
	for _, tc := range cases {
		if got := NewWindow(tc.start, tc.end).Days(); got != tc.expected {
			t.Fatalf("Days(%s..%s) expected %d, got %d", tc.start, tc.end, tc.expected, got)
		}
	}
}
