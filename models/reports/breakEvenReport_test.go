package reports

import (
	"testing"

	"github.com/rengganislabs/ledger_backend/models"
	"github.com/shopspring/decimal"
)

func TestComputeBreakEvenReport_PartialRecovery(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Capital: []models.CapitalRecord{
			{Date: day(2024, 6, 1), DateParsed: true, Description: "Setoran awal", Amount: 1000000},
		},
		Revenue: []models.RevenueRecord{
			{Date: day(2024, 7, 1), DateParsed: true, Channel: "Online", Amount: 900000},
		},
		Expense: []models.ExpenseRecord{
			{Date: day(2024, 7, 2), DateParsed: true, Category: "Gaji", Amount: 500000},
		},
	}

	resp := ComputeBreakEvenReport(set, rules)

	if resp.TotalCapitalContributed != 1000000 {
		t.Fatalf("capital expected 1000000, got %d", resp.TotalCapitalContributed)
	}
	if resp.CumulativeNetProfit != 400000 {
		t.Fatalf("net profit expected 400000, got %d", resp.CumulativeNetProfit)
	}
	if resp.CapitalOutstanding != 600000 {
		t.Fatalf("outstanding expected 600000, got %d", resp.CapitalOutstanding)
	}
	if resp.CapitalRecovered {
		t.Fatalf("capital must not be recovered yet")
	}
	if !resp.RecoveryPercentage.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("recovery expected 40, got %s", resp.RecoveryPercentage)
	}
}

func TestComputeBreakEvenReport_RecoveredKeepsSign(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Capital: []models.CapitalRecord{
			{Date: day(2024, 6, 1), DateParsed: true, Amount: 100000},
		},
		Revenue: []models.RevenueRecord{
			{Date: day(2024, 7, 1), DateParsed: true, Amount: 500000},
		},
		Expense: []models.ExpenseRecord{
			{Date: day(2024, 7, 2), DateParsed: true, Category: "Marketing", Amount: 100000},
		},
	}

	resp := ComputeBreakEvenReport(set, rules)

	// Surplus shows as negative outstanding, not clamped to zero.
	if resp.CapitalOutstanding != -300000 {
		t.Fatalf("outstanding expected -300000, got %d", resp.CapitalOutstanding)
	}
	if !resp.CapitalRecovered {
		t.Fatalf("capital must be recovered")
	}
	if !resp.RecoveryPercentage.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("recovery expected 400, got %s", resp.RecoveryPercentage)
	}
}

func TestComputeBreakEvenReport_DualViewUsesProfitBuckets(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Revenue: []models.RevenueRecord{
			{Date: day(2024, 7, 1), DateParsed: true, Amount: 1000},
		},
		Expense: []models.ExpenseRecord{
			// COGS on the P&L even though it is also CAPEX-listed.
			{Date: day(2024, 7, 2), DateParsed: true, Category: "Modal Bahan Baku", Amount: 300},
			// CAPEX only: excluded from lifetime net profit.
			{Date: day(2024, 7, 3), DateParsed: true, Category: "Modal Peralatan", Amount: 200},
			{Date: day(2024, 7, 4), DateParsed: true, Category: "Operasional", Amount: 100},
		},
	}

	resp := ComputeBreakEvenReport(set, rules)

	if resp.LifetimeCogs != 300 || resp.LifetimeOpex != 100 {
		t.Fatalf("lifetime buckets wrong: cogs=%d opex=%d", resp.LifetimeCogs, resp.LifetimeOpex)
	}
	if resp.LifetimeExpense != 600 {
		t.Fatalf("lifetime expense crosscheck expected 600, got %d", resp.LifetimeExpense)
	}
	if resp.CumulativeNetProfit != 600 {
		t.Fatalf("net profit expected 600, got %d", resp.CumulativeNetProfit)
	}
}

func TestComputeBreakEvenReport_DropsUnparsedDates(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Capital: []models.CapitalRecord{
			{Date: day(2024, 6, 1), DateParsed: true, Amount: 1000},
			{DateParsed: false, Amount: 9999},
		},
		Revenue: []models.RevenueRecord{
			{DateParsed: false, Amount: 9999},
		},
	}

	resp := ComputeBreakEvenReport(set, rules)
	if resp.TotalCapitalContributed != 1000 {
		t.Fatalf("unparsed capital record must be dropped, got %d", resp.TotalCapitalContributed)
	}
	if resp.LifetimeRevenue != 0 {
		t.Fatalf("unparsed revenue record must be dropped, got %d", resp.LifetimeRevenue)
	}
}

func TestComputeBreakEvenReport_ZeroCapital(t *testing.T) {
	rules := testRules()

	set := models.LedgerSet{
		Revenue: []models.RevenueRecord{
			{Date: day(2024, 7, 1), DateParsed: true, Amount: 500},
		},
	}

	resp := ComputeBreakEvenReport(set, rules)
	if !resp.RecoveryPercentage.Equal(decimal.Zero) {
		t.Fatalf("zero capital recovery expected 0, got %s", resp.RecoveryPercentage)
	}
	if !resp.CapitalRecovered {
		t.Fatalf("zero capital with profit counts as recovered")
	}
}
