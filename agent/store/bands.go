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

// BandTable is the read-only score-band reference table. Bands may overlap;
// the first row in file order covering a score is authoritative.
type BandTable struct {
	path string
}

func NewBandTable(path string) (*BandTable, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("band table path is required")
	}
	return &BandTable{path: trimmed}, nil
}

// FindBand returns the first band in table order with min <= score <= max.
// Rows with malformed numbers are skipped, not fatal.
func (t *BandTable) FindBand(score int) (ScoreBand, error) {
	bands, err := t.LoadAll()
	if err != nil {
		return ScoreBand{}, err
	}
	for _, band := range bands {
		if band.Covers(score) {
			return band, nil
		}
	}
	return ScoreBand{}, fmt.Errorf("%w: score=%d", ErrNoBandForScore, score)
}

func (t *BandTable) LoadAll() ([]ScoreBand, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, t.path)
		}
		return nil, fmt.Errorf("%w: open band table: %v", ErrPersistence, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read band header: %v", ErrPersistence, err)
	}

	var bands []ScoreBand
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read band row: %v", ErrPersistence, err)
		}
		band, ok := parseBandRow(row)
		if !ok {
			continue
		}
		bands = append(bands, band)
	}
	return bands, nil
}

func parseBandRow(row []string) (ScoreBand, bool) {
	if len(row) < 3 {
		return ScoreBand{}, false
	}
	minScore, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return ScoreBand{}, false
	}
	maxScore, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return ScoreBand{}, false
	}
	ceiling, err := decimal.NewFromString(strings.TrimSpace(row[2]))
	if err != nil {
		return ScoreBand{}, false
	}
	return ScoreBand{MinScore: minScore, MaxScore: maxScore, MaxAllowedLimit: ceiling}, true
}
