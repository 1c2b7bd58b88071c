package models

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rengganislabs/ledger_backend/utils"
)

// RuleSet is the engine's whole configuration surface. The category tables
// are domain policy that changes per deployment, so nothing here is
// hard-coded at aggregation sites; every engine function takes a RuleSet.
type RuleSet struct {
	// Exact-match category tables, compared after NormalizeCategory.
	CogsCategories  []string `json:"cogs_categories"`
	CapexCategories []string `json:"capex_categories"`
	OpexCategories  []string `json:"opex_categories"`

	// Bucket for categories not present in any table.
	DefaultBucket ExpenseBucket `json:"default_bucket"`

	// Substring matchers (case-insensitive) marking a revenue channel as
	// offline; everything else is online.
	OfflineChannelMatchers []string `json:"offline_channel_matchers"`

	// Ordered date layouts tried before the generic fallback. Day-first and
	// month-first both occur because the ledgers come from different
	// spreadsheet export conventions.
	DateLayouts []string `json:"date_layouts"`

	// Window length (in days) above which the revenue trend switches from
	// daily to monthly buckets.
	MonthlyTrendThresholdDays int `json:"monthly_trend_threshold_days"`

	// Unparsable-date handling per report path; see DateFallbackPolicy.
	PeriodDatePolicy   DateFallbackPolicy `json:"period_date_policy"`
	LifetimeDatePolicy DateFallbackPolicy `json:"lifetime_date_policy"`

	Timezone string `json:"timezone"`
}

// DefaultRuleSet returns the rule tables of the observed deployment.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		CogsCategories: []string{
			"pembelian bahan baku",
			"modal bahan baku",
		},
		CapexCategories: []string{
			"modal operasional",
			"modal bahan baku",
			"modal peralatan",
		},
		OpexCategories: []string{
			"operasional",
			"marketing",
			"gaji",
			"riset dan pengembangan",
		},
		DefaultBucket:             ExpenseBucketOpex,
		OfflineChannelMatchers:    []string{"offline", "kedai"},
		DateLayouts:               []string{"02/01/2006", "1/2/2006", "2006-01-02"},
		MonthlyTrendThresholdDays: 60,
		PeriodDatePolicy:          DateFallbackCurrentDate,
		LifetimeDatePolicy:        DateFallbackDropRecord,
		Timezone:                  "Asia/Jakarta",
	}
}

// RuleSetFromEnv starts from DefaultRuleSet and applies env overrides:
//
//	RULE_COGS_CATEGORIES, RULE_CAPEX_CATEGORIES, RULE_OPEX_CATEGORIES
//	RULE_DEFAULT_BUCKET, RULE_OFFLINE_MATCHERS, RULE_DATE_LAYOUTS
//	RULE_MONTHLY_TREND_THRESHOLD_DAYS, RULE_PERIOD_DATE_POLICY,
//	RULE_LIFETIME_DATE_POLICY, REPORT_TIMEZONE
//
// List values are comma separated.
func RuleSetFromEnv() RuleSet {
	r := DefaultRuleSet()

	if v := strings.TrimSpace(os.Getenv("RULE_COGS_CATEGORIES")); v != "" {
		r.CogsCategories = utils.SplitAndTrim(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULE_CAPEX_CATEGORIES")); v != "" {
		r.CapexCategories = utils.SplitAndTrim(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULE_OPEX_CATEGORIES")); v != "" {
		r.OpexCategories = utils.SplitAndTrim(v)
	}
	if v := ExpenseBucket(strings.TrimSpace(os.Getenv("RULE_DEFAULT_BUCKET"))); v.Valid() {
		r.DefaultBucket = v
	}
	if v := strings.TrimSpace(os.Getenv("RULE_OFFLINE_MATCHERS")); v != "" {
		r.OfflineChannelMatchers = utils.SplitAndTrim(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULE_DATE_LAYOUTS")); v != "" {
		r.DateLayouts = utils.SplitAndTrim(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULE_MONTHLY_TREND_THRESHOLD_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			r.MonthlyTrendThresholdDays = n
		}
	}
	switch DateFallbackPolicy(strings.TrimSpace(os.Getenv("RULE_PERIOD_DATE_POLICY"))) {
	case DateFallbackCurrentDate:
		r.PeriodDatePolicy = DateFallbackCurrentDate
	case DateFallbackDropRecord:
		r.PeriodDatePolicy = DateFallbackDropRecord
	}
	switch DateFallbackPolicy(strings.TrimSpace(os.Getenv("RULE_LIFETIME_DATE_POLICY"))) {
	case DateFallbackCurrentDate:
		r.LifetimeDatePolicy = DateFallbackCurrentDate
	case DateFallbackDropRecord:
		r.LifetimeDatePolicy = DateFallbackDropRecord
	}
	if v := strings.TrimSpace(os.Getenv("REPORT_TIMEZONE")); v != "" {
		r.Timezone = v
	}

	return r
}

// Location resolves the configured timezone, falling back to UTC.
func (r RuleSet) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseRecordDate parses raw ledger date text with the configured layouts.
func (r RuleSet) ParseRecordDate(raw string) (time.Time, bool) {
	return ParseDate(raw, r.DateLayouts, r.Location())
}

// ProfitBucket classifies an expense category for the P&L view. The chain
// is total: COGS table, then CAPEX table, then the OPEX allow-list, then
// the default bucket. Never fails.
func (r RuleSet) ProfitBucket(category string) ExpenseBucket {
	cat := utils.NormalizeCategory(category)
	if containsNormalized(r.CogsCategories, cat) {
		return ExpenseBucketCogs
	}
	if containsNormalized(r.CapexCategories, cat) {
		return ExpenseBucketCapex
	}
	if containsNormalized(r.OpexCategories, cat) {
		return ExpenseBucketOpex
	}
	return r.DefaultBucket
}

// CashBucket classifies an expense category for the cash-flow view,
// independently of ProfitBucket. A category listed in both the COGS and
// CAPEX tables is COGS on the P&L and CAPEX here: a capital purchase of
// raw materials is an operating cost and a capital outflow at once.
func (r RuleSet) CashBucket(category string) CashFlowBucket {
	if containsNormalized(r.CapexCategories, utils.NormalizeCategory(category)) {
		return CashFlowBucketCapex
	}
	return CashFlowBucketOperating
}

// Channel maps free-text channel names to online/offline.
func (r RuleSet) Channel(channelText string) SalesChannel {
	ch := strings.ToLower(channelText)
	for _, m := range r.OfflineChannelMatchers {
		if m != "" && strings.Contains(ch, strings.ToLower(m)) {
			return SalesChannelOffline
		}
	}
	return SalesChannelOnline
}

func containsNormalized(table []string, normalized string) bool {
	for _, entry := range table {
		if utils.NormalizeCategory(entry) == normalized {
			return true
		}
	}
	return false
}
