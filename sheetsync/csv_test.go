package sheetsync

import "testing"

func TestDecodeRows_HeaderNamedCells(t *testing.T) {
	body := []byte("Tanggal,Channel Penjualan,Nominal Omset\n" +
		"05/01/2025,Online,\"100.000,00\"\n" +
		"06/01/2025,Toko Offline,\"50.000,00\"\n")

	rows, err := DecodeRows(body)
	if err != nil {
		t.Fatalf("DecodeRows error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Tanggal"] != "05/01/2025" || rows[0]["Nominal Omset"] != "100.000,00" {
		t.Fatalf("first row wrong: %v", rows[0])
	}
	if rows[1]["Channel Penjualan"] != "Toko Offline" {
		t.Fatalf("second row wrong: %v", rows[1])
	}
}

func TestDecodeRows_LenientInput(t *testing.T) {
	// BOM on the header, a ragged row, and blank lines in between.
	body := []byte("\uFEFFTanggal,Nominal\n" +
		"05/01/2025,100\n" +
		"\n" +
		",\n" +
		"06/01/2025\n")

	rows, err := DecodeRows(body)
	if err != nil {
		t.Fatalf("DecodeRows error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Tanggal"] != "05/01/2025" {
		t.Fatalf("BOM must be stripped from the first header: %v", rows[0])
	}
	// Ragged row: the missing cell is simply absent.
	if _, ok := rows[1]["Nominal"]; ok {
		t.Fatalf("short row must not invent cells: %v", rows[1])
	}
}

func TestDecodeRows_EmptyBody(t *testing.T) {
	rows, err := DecodeRows(nil)
	if err != nil {
		t.Fatalf("DecodeRows error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
