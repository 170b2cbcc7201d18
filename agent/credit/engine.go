package credit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	contractx "github.com/caio126cf/bank-agent/agent/contract"
	storex "github.com/caio126cf/bank-agent/agent/store"
)

const (
	msgApproved = "Limit increase approved"
	msgRejected = "Limit increase rejected"

	closingApproved = "Congratulations, your increase was approved. Let me know if there is anything else I can help with."
	closingRejected = "We are sorry, your request was rejected. If you would like, a credit interview can update your score and open up a higher limit."
)

// Engine evaluates limit-increase requests against the score-band table and
// recalculates scores from credit-interview answers. Both operations are
// read-modify-rewrite passes over the account table; the mutex serializes them
// so two in-flight requests cannot interleave a read with a rewrite.
type Engine struct {
	accounts contractx.RecordStore
	bands    contractx.BandFinder
	audit    contractx.AuditAppender

	mu  sync.Mutex
	now func() time.Time
}

func New(accounts contractx.RecordStore, bands contractx.BandFinder, audit contractx.AuditAppender) (*Engine, error) {
	if accounts == nil {
		return nil, errors.New("record store is required")
	}
	if bands == nil {
		return nil, errors.New("band finder is required")
	}
	if audit == nil {
		return nil, errors.New("audit appender is required")
	}
	return &Engine{
		accounts: accounts,
		bands:    bands,
		audit:    audit,
		now:      time.Now,
	}, nil
}

// EvaluateLimitIncrease decides a limit-increase request: the request is
// approved when it does not exceed the ceiling of the band covering the
// customer's current score (the boundary value approves). Every attempt is
// appended to the audit ledger before any account mutation, so the trail never
// misses an attempt even if the subsequent rewrite fails.
func (e *Engine) EvaluateLimitIncrease(ctx context.Context, req contractx.LimitIncreaseRequest) (contractx.LimitIncreaseResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	account, err := e.accounts.Find(req.CustomerID)
	if err != nil {
		return contractx.LimitIncreaseResult{}, err
	}

	band, err := e.bands.FindBand(account.Score)
	if err != nil {
		return contractx.LimitIncreaseResult{}, err
	}

	decision := storex.DecisionRejected
	if req.RequestedLimit.LessThanOrEqual(band.MaxAllowedLimit) {
		decision = storex.DecisionApproved
	}

	if err := e.audit.Append(storex.AuditEntry{
		CustomerID:     req.CustomerID,
		RequestedAt:    e.now(),
		CurrentLimit:   account.CurrentLimit,
		RequestedLimit: req.RequestedLimit,
		Decision:       decision,
	}); err != nil {
		return contractx.LimitIncreaseResult{}, err
	}

	if decision == storex.DecisionApproved {
		if err := e.applyLimit(req.CustomerID, req.RequestedLimit); err != nil {
			return contractx.LimitIncreaseResult{}, err
		}
	}

	log.Info().
		Str("customer_id", req.CustomerID).
		Str("decision", string(decision)).
		Str("requested_limit", req.RequestedLimit.StringFixed(2)).
		Msg("limit increase evaluated")

	result := contractx.LimitIncreaseResult{
		Success:            true,
		CustomerID:         req.CustomerID,
		CurrentLimit:       account.CurrentLimit,
		RequestedLimit:     req.RequestedLimit,
		Status:             decision,
		MaxAllowedForScore: band.MaxAllowedLimit,
	}
	if decision == storex.DecisionApproved {
		result.Message = msgApproved
		result.ClosingMessage = closingApproved
	} else {
		result.Message = msgRejected
		result.ClosingMessage = closingRejected
	}
	return result, nil
}

// applyLimit rewrites the whole account table with the matched row's limit
// replaced, every other row and the row order untouched.
func (e *Engine) applyLimit(customerID string, newLimit decimal.Decimal) error {
	records, err := e.accounts.LoadAll()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].CustomerID == customerID {
			records[i].CurrentLimit = newLimit
		}
	}
	return e.accounts.RewriteAll(records)
}
