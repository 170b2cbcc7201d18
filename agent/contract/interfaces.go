package contract

import (
	"context"

	storex "github.com/caio126cf/bank-agent/agent/store"
)

// RecordStore is the persistence contract over the account table. The backing
// format has no partial-row update, so mutation is always a whole-table rewrite.
type RecordStore interface {
	Find(customerID string) (storex.AccountRecord, error)
	LoadAll() ([]storex.AccountRecord, error)
	RewriteAll(records []storex.AccountRecord) error
}

// BandFinder resolves the score band covering a score, first match in table
// order winning.
type BandFinder interface {
	FindBand(score int) (storex.ScoreBand, error)
}

// AuditAppender records limit-increase attempts, append-only.
type AuditAppender interface {
	Append(entry storex.AuditEntry) error
}

type Engine interface {
	EvaluateLimitIncrease(ctx context.Context, req LimitIncreaseRequest) (LimitIncreaseResult, error)
	RecalculateScore(ctx context.Context, interview ScoreInterview) (ScoreRecalcResult, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, customerID, birthDate string) (AuthResult, error)
}
