package models

import (
	"time"

	"github.com/rengganislabs/ledger_backend/utils"
)

// RawRow is one tabular row as delivered by the row-acquisition side:
// column name -> cell text, both still in operator-entered form.
type RawRow map[string]string

// Canonical records. Amounts are integer rupiah (the currency has no
// fractional precision, see ParseAmount). DateParsed records whether the
// raw date text matched any layout; the report paths apply their
// DateFallbackPolicy to records where it is false.

type RevenueRecord struct {
	Date       time.Time `json:"date"`
	DateParsed bool      `json:"-"`
	Channel    string    `json:"channel"`
	Amount     int64     `json:"amount"`
}

type ExpenseRecord struct {
	Date       time.Time `json:"date"`
	DateParsed bool      `json:"-"`
	Category   string    `json:"category"`
	Amount     int64     `json:"amount"`
}

type CapitalRecord struct {
	Date        time.Time `json:"date"`
	DateParsed  bool      `json:"-"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
}

// LedgerSet is one immutable snapshot of the three normalized ledgers.
// Version changes whenever any source ledger changes; report caching keys
// on it.
type LedgerSet struct {
	Revenue []RevenueRecord `json:"revenue"`
	Expense []ExpenseRecord `json:"expense"`
	Capital []CapitalRecord `json:"capital"`

	Version   string    `json:"version"`
	FetchedAt time.Time `json:"fetched_at"`
}

// defaultCategoryLabel stands in for a missing expense category so the row
// still appears in breakdown tables.
const defaultCategoryLabel = "Umum"

// Column aliases per field, matched case/space-insensitively. The sheets
// have been exported with several header conventions over time.
var (
	dateAliases        = []string{"tanggal", "date", "tgl"}
	channelAliases     = []string{"channel_penjualan", "channel", "kanal"}
	categoryAliases    = []string{"kategori_biaya", "kategori", "category"}
	descriptionAliases = []string{"keterangan", "description", "catatan"}
	amountAliases      = []string{
		"nominal_omset", "nominal_biaya", "nominal_modal",
		"nominal", "jumlah", "amount",
	}
)

func fieldValue(row RawRow, aliases []string) string {
	for col, val := range row {
		key := utils.NormalizeKey(col)
		for _, alias := range aliases {
			if key == utils.NormalizeKey(alias) {
				return val
			}
		}
	}
	return ""
}

// NormalizeRevenueRows maps raw revenue rows into canonical records. Rows
// missing fields are normalized, not rejected: a missing amount becomes 0,
// a missing date leaves DateParsed false for the policy downstream.
func NormalizeRevenueRows(rows []RawRow, rules RuleSet) []RevenueRecord {
	records := make([]RevenueRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := rules.ParseRecordDate(fieldValue(row, dateAliases))
		records = append(records, RevenueRecord{
			Date:       date,
			DateParsed: ok,
			Channel:    fieldValue(row, channelAliases),
			Amount:     ParseAmount(fieldValue(row, amountAliases)),
		})
	}
	return records
}

func NormalizeExpenseRows(rows []RawRow, rules RuleSet) []ExpenseRecord {
	records := make([]ExpenseRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := rules.ParseRecordDate(fieldValue(row, dateAliases))
		category := fieldValue(row, categoryAliases)
		if category == "" {
			category = defaultCategoryLabel
		}
		records = append(records, ExpenseRecord{
			Date:       date,
			DateParsed: ok,
			Category:   category,
			Amount:     ParseAmount(fieldValue(row, amountAliases)),
		})
	}
	return records
}

func NormalizeCapitalRows(rows []RawRow, rules RuleSet) []CapitalRecord {
	records := make([]CapitalRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := rules.ParseRecordDate(fieldValue(row, dateAliases))
		records = append(records, CapitalRecord{
			Date:        date,
			DateParsed:  ok,
			Description: fieldValue(row, descriptionAliases),
			Amount:      ParseAmount(fieldValue(row, amountAliases)),
		})
	}
	return records
}
