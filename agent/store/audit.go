package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var auditColumns = []string{"customer_id", "request_timestamp", "current_limit_at_request", "requested_limit", "decision"}

// AuditLog is the append-only ledger of limit-increase attempts. Rows are
// never mutated or deleted; the header is materialized once, when the file is
// first created.
type AuditLog struct {
	path string
}

func NewAuditLog(path string) (*AuditLog, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("audit log path is required")
	}
	return &AuditLog{path: trimmed}, nil
}

// Append writes one entry at the end of the ledger. Timestamps are persisted
// in UTC, truncated to whole seconds, RFC 3339 with the trailing Z.
func (l *AuditLog) Append(entry AuditEntry) error {
	writeHeader := false
	if _, err := os.Stat(l.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: stat audit log: %v", ErrPersistence, err)
		}
		writeHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open audit log: %v", ErrPersistence, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if writeHeader {
		if err := writer.Write(auditColumns); err != nil {
			return fmt.Errorf("%w: write audit header: %v", ErrPersistence, err)
		}
	}
	row := []string{
		entry.CustomerID,
		entry.RequestedAt.UTC().Truncate(time.Second).Format(time.RFC3339),
		entry.CurrentLimit.StringFixed(2),
		entry.RequestedLimit.StringFixed(2),
		string(entry.Decision),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("%w: write audit row: %v", ErrPersistence, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: flush audit log: %v", ErrPersistence, err)
	}
	return nil
}

// Entries reads the ledger back in file order.
func (l *AuditLog) Entries() ([]AuditEntry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, l.path)
		}
		return nil, fmt.Errorf("%w: open audit log: %v", ErrPersistence, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read audit header: %v", ErrPersistence, err)
	}

	var entries []AuditEntry
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read audit row: %v", ErrPersistence, err)
		}
		entry, ok := parseAuditRow(row)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseAuditRow(row []string) (AuditEntry, bool) {
	if len(row) < len(auditColumns) {
		return AuditEntry{}, false
	}
	requestedAt, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return AuditEntry{}, false
	}
	entry := AuditEntry{
		CustomerID:  row[0],
		RequestedAt: requestedAt,
		Decision:    Decision(row[4]),
	}
	if limit, err := parseMoney(row[2]); err == nil {
		entry.CurrentLimit = limit
	}
	if limit, err := parseMoney(row[3]); err == nil {
		entry.RequestedLimit = limit
	}
	return entry, true
}
