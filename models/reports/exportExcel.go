package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildPeriodReportExcel renders a period report as a two-sheet workbook:
// the aggregate figures plus the category breakdowns, and the revenue
// trend series.
func BuildPeriodReportExcel(report *PeriodReportResponse) (*excelize.File, error) {
	f := excelize.NewFile()

	const summary = "Ringkasan"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}

	f.SetCellValue(summary, "A1", "Periode")
	f.SetCellValue(summary, "B1", report.FromDate+" s/d "+report.ToDate)

	rows := []struct {
		label string
		value int64
	}{
		{"Total Omset", report.ProfitAndLoss.Revenue},
		{"Omset Online", report.ProfitAndLoss.RevenueOnline},
		{"Omset Offline", report.ProfitAndLoss.RevenueOffline},
		{"HPP (COGS)", report.ProfitAndLoss.Cogs},
		{"Laba Kotor", report.ProfitAndLoss.GrossProfit},
		{"Biaya Operasional (OPEX)", report.ProfitAndLoss.Opex},
		{"Laba Bersih", report.ProfitAndLoss.NetProfit},
		{"Uang Masuk", report.CashFlow.CashIn},
		{"Setoran Modal", report.CashFlow.CapitalIn},
		{"Belanja Modal (CAPEX)", report.CashFlow.Capex},
		{"Biaya Non-CAPEX", report.CashFlow.OpexCash},
		{"Uang Keluar", report.CashFlow.CashOut},
		{"Arus Kas Bersih", report.CashFlow.NetCashFlow},
	}
	for i, row := range rows {
		f.SetCellValue(summary, fmt.Sprintf("A%d", i+3), row.label)
		f.SetCellValue(summary, fmt.Sprintf("B%d", i+3), row.value)
	}

	next := len(rows) + 5
	next = writeBreakdown(f, summary, next, "Rincian HPP", report.ProfitAndLoss.CogsBreakdown)
	next = writeBreakdown(f, summary, next, "Rincian OPEX", report.ProfitAndLoss.OpexBreakdown)
	writeBreakdown(f, summary, next, "Rincian CAPEX", report.CashFlow.CapexBreakdown)

	const trend = "Trend Omset"
	if _, err := f.NewSheet(trend); err != nil {
		return nil, err
	}
	f.SetCellValue(trend, "A1", "Periode")
	f.SetCellValue(trend, "B1", "Omset")
	f.SetCellValue(trend, "C1", string(report.RevenueTrend.Interval))
	for i, p := range report.RevenueTrend.Points {
		f.SetCellValue(trend, fmt.Sprintf("A%d", i+2), p.Label)
		f.SetCellValue(trend, fmt.Sprintf("B%d", i+2), p.Revenue)
	}

	return f, nil
}

func writeBreakdown(f *excelize.File, sheet string, row int, title string, items []CategoryTotal) int {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), title)
	row++
	for _, item := range items {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Category)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Amount)
		row++
	}
	return row + 1
}
