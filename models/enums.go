package models

import (
	"errors"
)

type LedgerKind string

const (
	LedgerKindRevenue LedgerKind = "Revenue"
	LedgerKindExpense LedgerKind = "Expense"
	LedgerKindCapital LedgerKind = "Capital"
)

func ParseLedgerKind(s string) (LedgerKind, error) {
	switch s {
	case "Revenue":
		return LedgerKindRevenue, nil
	case "Expense":
		return LedgerKindExpense, nil
	case "Capital":
		return LedgerKindCapital, nil
	default:
		return "", errors.New("invalid ledger kind")
	}
}

// ExpenseBucket is the profit-and-loss classification of an expense row.
type ExpenseBucket string

const (
	ExpenseBucketCogs  ExpenseBucket = "COGS"
	ExpenseBucketOpex  ExpenseBucket = "OPEX"
	ExpenseBucketCapex ExpenseBucket = "CAPEX"
)

func (b ExpenseBucket) Valid() bool {
	switch b {
	case ExpenseBucketCogs, ExpenseBucketOpex, ExpenseBucketCapex:
		return true
	}
	return false
}

// CashFlowBucket is the cash-flow classification of an expense row. It is
// derived independently of ExpenseBucket: a category can be COGS for the
// P&L view and CAPEX for the cash view at the same time.
type CashFlowBucket string

const (
	CashFlowBucketCapex     CashFlowBucket = "CAPEX"
	CashFlowBucketOperating CashFlowBucket = "OPERATING"
)

type SalesChannel string

const (
	SalesChannelOnline  SalesChannel = "ONLINE"
	SalesChannelOffline SalesChannel = "OFFLINE"
)

// DateFallbackPolicy decides what happens to a record whose date text could
// not be parsed. The period-scoped report path defaults such rows to the
// current date (they fall outside most windows); the lifetime path drops
// them so they never contribute to any total. The divergence is inherited
// from the source system and is kept as an explicit per-path setting.
type DateFallbackPolicy string

const (
	DateFallbackCurrentDate DateFallbackPolicy = "CurrentDate"
	DateFallbackDropRecord  DateFallbackPolicy = "DropRecord"
)
