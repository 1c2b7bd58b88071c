package config

import (
	"os"
	"strings"
)

// SheetSource identifies one published-CSV ledger feed.
type SheetSource struct {
	Kind string
	URL  string
}

// GetSheetSources returns the three ledger feeds from env:
//   - SHEET_URL_REVENUE
//   - SHEET_URL_EXPENSE
//   - SHEET_URL_CAPITAL
//
// A missing URL is returned empty; the sync worker skips empty sources and
// keeps serving the last stored snapshot for that ledger.
func GetSheetSources() []SheetSource {
	return []SheetSource{
		{Kind: "Revenue", URL: strings.TrimSpace(os.Getenv("SHEET_URL_REVENUE"))},
		{Kind: "Expense", URL: strings.TrimSpace(os.Getenv("SHEET_URL_EXPENSE"))},
		{Kind: "Capital", URL: strings.TrimSpace(os.Getenv("SHEET_URL_CAPITAL"))},
	}
}
