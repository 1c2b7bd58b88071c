package sheetsync

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rengganislabs/ledger_backend/models"
)

// DecodeRows turns a CSV body into header-named raw rows. The decoding is
// deliberately lenient: ragged rows are accepted, fully empty lines are
// skipped, and a UTF-8 BOM on the header is stripped. Malformed cells are
// someone else's problem -- the normalizer downgrades them to zero values.
func DecodeRows(data []byte) ([]models.RawRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return []models.RawRow{}, nil
		}
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	rows := []models.RawRow{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isEmptyRecord(record) {
			continue
		}
		row := models.RawRow{}
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
