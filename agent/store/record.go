package store

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrStoreUnavailable = errors.New("backing table does not exist")
	ErrAccountNotFound  = errors.New("account not found")
	ErrNoBandForScore   = errors.New("no score band covers score")
	ErrPersistence      = errors.New("persistence failure")
)

const (
	MinScore = 0
	MaxScore = 1000
)

// AccountRecord is one row of the account table. CurrentLimit is persisted
// with exactly two decimal digits; Score stays within [MinScore, MaxScore].
type AccountRecord struct {
	CustomerID   string          `json:"customer_id"`
	BirthDate    string          `json:"birth_date"`
	Name         string          `json:"name"`
	CurrentLimit decimal.Decimal `json:"current_limit"`
	Score        int             `json:"score"`
}

// ScoreBand maps a contiguous score range to the maximum approvable limit.
// Bounds are inclusive on both ends.
type ScoreBand struct {
	MinScore        int             `json:"min_score"`
	MaxScore        int             `json:"max_score"`
	MaxAllowedLimit decimal.Decimal `json:"max_allowed_limit"`
}

func (b ScoreBand) Covers(score int) bool {
	return b.MinScore <= score && score <= b.MaxScore
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// AuditEntry is one immutable row of the limit-increase ledger.
type AuditEntry struct {
	CustomerID     string          `json:"customer_id"`
	RequestedAt    time.Time       `json:"requested_at"`
	CurrentLimit   decimal.Decimal `json:"current_limit"`
	RequestedLimit decimal.Decimal `json:"requested_limit"`
	Decision       Decision        `json:"decision"`
}

func parseMoney(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// ClampScore constrains a raw score to the valid [MinScore, MaxScore] range.
func ClampScore(raw int64) int {
	if raw < MinScore {
		return MinScore
	}
	if raw > MaxScore {
		return MaxScore
	}
	return int(raw)
}
