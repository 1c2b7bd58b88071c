package models

import (
	"testing"
	"time"
)

func utcRules() RuleSet {
	r := DefaultRuleSet()
	r.Timezone = "UTC"
	return r
}

func TestNormalizeRevenueRows_HeaderAliases(t *testing.T) {
	rules := utcRules()

	rows := []RawRow{
		{"Tanggal": "05/01/2025", "Channel Penjualan": "Online", "Nominal Omset": "100.000,00"},
		// Different header convention, same fields.
		{"date": "06/01/2025", "kanal": "Toko Offline", "jumlah": "50.000"},
	}
	records := NormalizeRevenueRows(rows, rules)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if !first.DateParsed || !first.Date.Equal(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first record date wrong: %+v", first)
	}
	if first.Channel != "Online" || first.Amount != 100000 {
		t.Fatalf("first record wrong: %+v", first)
	}

	second := records[1]
	if second.Channel != "Toko Offline" || second.Amount != 50000 {
		t.Fatalf("second record wrong: %+v", second)
	}
}

func TestNormalizeExpenseRows_MissingFieldsDegrade(t *testing.T) {
	rules := utcRules()

	rows := []RawRow{
		{"Tanggal": "bukan tanggal", "Kategori Biaya": "Marketing", "Nominal Biaya": "abc"},
		{"Tanggal": "05/01/2025"},
	}
	records := NormalizeExpenseRows(rows, rules)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0].DateParsed {
		t.Fatalf("unparsable date must leave DateParsed false")
	}
	if records[0].Amount != 0 {
		t.Fatalf("unparsable amount expected 0, got %d", records[0].Amount)
	}
	if records[0].Category != "Marketing" {
		t.Fatalf("category expected Marketing, got %q", records[0].Category)
	}

	// Missing category gets the placeholder label, missing amount is 0.
	if records[1].Category != "Umum" {
		t.Fatalf("missing category expected Umum, got %q", records[1].Category)
	}
	if records[1].Amount != 0 {
		t.Fatalf("missing amount expected 0, got %d", records[1].Amount)
	}
	if !records[1].DateParsed {
		t.Fatalf("valid date must parse")
	}
}

func TestNormalizeCapitalRows(t *testing.T) {
	rules := utcRules()

	rows := []RawRow{
		{"Tanggal": "10/02/2025", "Keterangan": "Setoran awal", "Nominal Modal": "1.000.000"},
	}
	records := NormalizeCapitalRows(rows, rules)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Description != "Setoran awal" || records[0].Amount != 1000000 {
		t.Fatalf("capital record wrong: %+v", records[0])
	}
}
