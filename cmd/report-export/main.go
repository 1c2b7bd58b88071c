// Command report-export computes the period and break-even reports from
// local CSV exports of the three ledgers, without the API server or any
// backing services. Output is JSON on stdout, or an xlsx file with -xlsx.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rengganislabs/ledger_backend/models"
	"github.com/rengganislabs/ledger_backend/models/reports"
	"github.com/rengganislabs/ledger_backend/sheetsync"
)

type output struct {
	Period    *reports.PeriodReportResponse `json:"period"`
	BreakEven *reports.BreakEvenResponse    `json:"break_even"`
}

func main() {
	revenuePath := flag.String("revenue", "", "path to the revenue ledger CSV")
	expensePath := flag.String("expense", "", "path to the expense ledger CSV")
	capitalPath := flag.String("capital", "", "path to the capital ledger CSV")
	fromDate := flag.String("from", "", "window start (YYYY-MM-DD, default 6 months ago)")
	toDate := flag.String("to", "", "window end (YYYY-MM-DD, default today)")
	xlsxPath := flag.String("xlsx", "", "write the period report as xlsx to this path instead of JSON")
	flag.Parse()

	if *revenuePath == "" || *expensePath == "" || *capitalPath == "" {
		fmt.Fprintln(os.Stderr, "-revenue, -expense and -capital are required")
		flag.Usage()
		os.Exit(2)
	}

	rules := models.RuleSetFromEnv()
	loc := rules.Location()

	set := models.LedgerSet{FetchedAt: time.Now()}
	set.Revenue = models.NormalizeRevenueRows(mustDecode(*revenuePath), rules)
	set.Expense = models.NormalizeExpenseRows(mustDecode(*expensePath), rules)
	set.Capital = models.NormalizeCapitalRows(mustDecode(*capitalPath), rules)

	now := time.Now().In(loc)
	start := now.AddDate(0, -6, 0)
	end := now
	if *fromDate != "" {
		start = mustParseDate(*fromDate, loc)
	}
	if *toDate != "" {
		end = mustParseDate(*toDate, loc)
	}
	w := reports.NewWindow(start, end)
	if w.End.Before(w.Start) {
		fatal(fmt.Errorf("-to %s is before -from %s", *toDate, *fromDate))
	}

	period := reports.ComputePeriodReport(set, w, rules)

	if *xlsxPath != "" {
		f, err := reports.BuildPeriodReportExcel(period)
		if err != nil {
			fatal(err)
		}
		if err := f.SaveAs(*xlsxPath); err != nil {
			fatal(err)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{
		Period:    period,
		BreakEven: reports.ComputeBreakEvenReport(set, rules),
	}); err != nil {
		fatal(err)
	}
}

func mustDecode(path string) []models.RawRow {
	body, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	rows, err := sheetsync.DecodeRows(body)
	if err != nil {
		fatal(fmt.Errorf("decode %s: %w", path, err))
	}
	return rows
}

func mustParseDate(s string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		fatal(err)
	}
	return t
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "report-export:", err)
	os.Exit(1)
}
