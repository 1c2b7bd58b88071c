package models

import "testing"

func TestProfitBucket_ChainOrder(t *testing.T) {
	rules := DefaultRuleSet()

	cases := []struct {
		category string
		expected ExpenseBucket
	}{
		{"Pembelian Bahan Baku", ExpenseBucketCogs},
		// Listed in both the COGS and CAPEX tables; COGS wins on the P&L.
		{"Modal Bahan Baku", ExpenseBucketCogs},
		{"Modal Peralatan", ExpenseBucketCapex},
		{"Modal Operasional", ExpenseBucketCapex},
		{"Operasional", ExpenseBucketOpex},
		{"Marketing", ExpenseBucketOpex},
		{"Gaji", ExpenseBucketOpex},
		{"Riset dan Pengembangan", ExpenseBucketOpex},
		// Unknown categories land in the default bucket, never error.
		{"Sewa Gedung", ExpenseBucketOpex},
		{"", ExpenseBucketOpex},
		// Matching is case and inner-space insensitive.
		{"  PEMBELIAN   bahan   BAKU  ", ExpenseBucketCogs},
	}
	for _, tc := range cases {
		if got := rules.ProfitBucket(tc.category); got != tc.expected {
			t.Fatalf("ProfitBucket(%q) expected %s, got %s", tc.category, tc.expected, got)
		}
	}
}

func TestCashBucket_IndependentOfProfitView(t *testing.T) {
	rules := DefaultRuleSet()

	// The dual classification: COGS on the P&L, CAPEX in the cash view.
	if got := rules.ProfitBucket("Modal Bahan Baku"); got != ExpenseBucketCogs {
		t.Fatalf("ProfitBucket(modal bahan baku) expected COGS, got %s", got)
	}
	if got := rules.CashBucket("Modal Bahan Baku"); got != CashFlowBucketCapex {
		t.Fatalf("CashBucket(modal bahan baku) expected CAPEX, got %s", got)
	}

	if got := rules.CashBucket("Pembelian Bahan Baku"); got != CashFlowBucketOperating {
		t.Fatalf("CashBucket(pembelian bahan baku) expected operating, got %s", got)
	}
	if got := rules.CashBucket("Marketing"); got != CashFlowBucketOperating {
		t.Fatalf("CashBucket(marketing) expected operating, got %s", got)
	}
	if got := rules.CashBucket("Sewa Gedung"); got != CashFlowBucketOperating {
		t.Fatalf("CashBucket(unknown) expected operating, got %s", got)
	}
}

func TestChannel_SubstringMatchers(t *testing.T) {
	rules := DefaultRuleSet()

	cases := []struct {
		channel  string
		expected SalesChannel
	}{
		{"Online", SalesChannelOnline},
		{"Shopee", SalesChannelOnline},
		{"Offline", SalesChannelOffline},
		{"Toko Offline", SalesChannelOffline},
		{"KEDAI", SalesChannelOffline},
		{"Kedai Kopi Pusat", SalesChannelOffline},
		{"", SalesChannelOnline},
	}
	for _, tc := range cases {
		if got := rules.Channel(tc.channel); got != tc.expected {
			t.Fatalf("Channel(%q) expected %s, got %s", tc.channel, tc.expected, got)
		}
	}
}

func TestRuleSet_DefaultPolicies(t *testing.T) {
	rules := DefaultRuleSet()
	if rules.PeriodDatePolicy != DateFallbackCurrentDate {
		t.Fatalf("period policy expected current-date, got %s", rules.PeriodDatePolicy)
	}
	if rules.LifetimeDatePolicy != DateFallbackDropRecord {
		t.Fatalf("lifetime policy expected drop-record, got %s", rules.LifetimeDatePolicy)
	}
	if rules.MonthlyTrendThresholdDays != 60 {
		t.Fatalf("trend threshold expected 60, got %d", rules.MonthlyTrendThresholdDays)
	}
}
