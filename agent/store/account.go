package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var accountColumns = []string{"customer_id", "birth_date", "name", "current_limit", "score"}

// AccountTable is a CSV-backed account store: header row plus one row per
// customer. There is no partial-row update primitive, so every mutation goes
// through RewriteAll.
type AccountTable struct {
	path string
}

func NewAccountTable(path string) (*AccountTable, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("account table path is required")
	}
	return &AccountTable{path: trimmed}, nil
}

// Find scans the table in file order and returns the first row whose
// customer id matches.
func (t *AccountTable) Find(customerID string) (AccountRecord, error) {
	records, err := t.LoadAll()
	if err != nil {
		return AccountRecord{}, err
	}
	for _, rec := range records {
		if rec.CustomerID == customerID {
			return rec, nil
		}
	}
	return AccountRecord{}, fmt.Errorf("%w: customer_id=%s", ErrAccountNotFound, customerID)
}

// LoadAll reads the whole table preserving file order.
func (t *AccountTable) LoadAll() ([]AccountRecord, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, t.path)
		}
		return nil, fmt.Errorf("%w: open account table: %v", ErrPersistence, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read account header: %v", ErrPersistence, err)
	}

	var records []AccountRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read account row: %v", ErrPersistence, err)
		}
		if len(row) < len(accountColumns) {
			continue
		}
		records = append(records, parseAccountRow(row))
	}
	return records, nil
}

// RewriteAll replaces the entire backing table, header first, preserving the
// given row order. Not transactional with respect to concurrent readers.
func (t *AccountTable) RewriteAll(records []AccountRecord) error {
	f, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("%w: rewrite account table: %v", ErrPersistence, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(accountColumns); err != nil {
		return fmt.Errorf("%w: write account header: %v", ErrPersistence, err)
	}
	for _, rec := range records {
		row := []string{
			rec.CustomerID,
			rec.BirthDate,
			rec.Name,
			rec.CurrentLimit.StringFixed(2),
			strconv.Itoa(rec.Score),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("%w: write account row: %v", ErrPersistence, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: flush account table: %v", ErrPersistence, err)
	}
	return nil
}

// Malformed numeric cells fall back to zero values rather than failing the
// whole scan, matching the tolerance of the seed-data format.
func parseAccountRow(row []string) AccountRecord {
	limit, err := decimal.NewFromString(strings.TrimSpace(row[3]))
	if err != nil {
		limit = decimal.Zero
	}
	score, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		score = 0
	}
	return AccountRecord{
		CustomerID:   row[0],
		BirthDate:    row[1],
		Name:         row[2],
		CurrentLimit: limit,
		Score:        score,
	}
}
