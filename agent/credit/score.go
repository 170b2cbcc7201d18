package credit

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	contractx "github.com/caio126cf/bank-agent/agent/contract"
	storex "github.com/caio126cf/bank-agent/agent/store"
)

// Fixed scoring weights, not configurable at runtime.
const incomeWeight = 30

var employmentWeights = map[contractx.EmploymentType]int64{
	contractx.EmploymentFormal:       300,
	contractx.EmploymentSelfEmployed: 200,
	contractx.EmploymentUnemployed:   0,
}

var debtWeights = map[contractx.DebtFlag]int64{
	contractx.DebtYes: -100,
	contractx.DebtNo:  100,
}

// Dependents beyond two all share the lowest weight.
func dependentWeight(count int) int64 {
	switch {
	case count >= 3:
		return 30
	case count == 2:
		return 60
	case count == 1:
		return 80
	default:
		return 100
	}
}

// RecalculateScore validates the interview answers, applies the weighted
// formula, clamps the result to the valid score range, and rewrites the
// account table with the customer's new score.
func (e *Engine) RecalculateScore(ctx context.Context, interview contractx.ScoreInterview) (contractx.ScoreRecalcResult, error) {
	employment := contractx.EmploymentType(strings.ToLower(strings.TrimSpace(interview.EmploymentType)))
	employmentW, ok := employmentWeights[employment]
	if !ok {
		return contractx.ScoreRecalcResult{}, fmt.Errorf(
			"%w: employment type must be formal, self-employed or unemployed, got %q",
			contractx.ErrInvalidArgument, interview.EmploymentType)
	}

	debt := contractx.DebtFlag(strings.ToLower(strings.TrimSpace(interview.HasActiveDebt)))
	debtW, ok := debtWeights[debt]
	if !ok {
		return contractx.ScoreRecalcResult{}, fmt.Errorf(
			"%w: active-debt answer must be yes or no, got %q",
			contractx.ErrInvalidArgument, interview.HasActiveDebt)
	}

	if interview.DependentCount < 0 {
		return contractx.ScoreRecalcResult{}, fmt.Errorf(
			"%w: dependent count cannot be negative", contractx.ErrInvalidArgument)
	}

	if interview.MonthlyIncome.IsNegative() || interview.FixedExpenses.IsNegative() {
		return contractx.ScoreRecalcResult{}, fmt.Errorf(
			"%w: income and expenses cannot be negative", contractx.ErrInvalidArgument)
	}

	newScore := computeScore(interview.MonthlyIncome, interview.FixedExpenses,
		employmentW, dependentWeight(interview.DependentCount), debtW)

	e.mu.Lock()
	defer e.mu.Unlock()

	records, err := e.accounts.LoadAll()
	if err != nil {
		return contractx.ScoreRecalcResult{}, err
	}

	// The full table is always scanned, even on a miss.
	found := false
	previousScore := 0
	for i := range records {
		if records[i].CustomerID == interview.CustomerID {
			found = true
			previousScore = records[i].Score
			records[i].Score = newScore
		}
	}
	if !found {
		return contractx.ScoreRecalcResult{}, fmt.Errorf(
			"%w: customer_id=%s", storex.ErrAccountNotFound, interview.CustomerID)
	}

	if err := e.accounts.RewriteAll(records); err != nil {
		return contractx.ScoreRecalcResult{}, err
	}

	log.Info().
		Str("customer_id", interview.CustomerID).
		Int("previous_score", previousScore).
		Int("new_score", newScore).
		Msg("score recalculated")

	return contractx.ScoreRecalcResult{
		Success:        true,
		CustomerID:     interview.CustomerID,
		PreviousScore:  previousScore,
		NewScore:       newScore,
		ScoreDelta:     newScore - previousScore,
		MonthlyIncome:  interview.MonthlyIncome,
		EmploymentType: interview.EmploymentType,
		FixedExpenses:  interview.FixedExpenses,
		DependentCount: interview.DependentCount,
		HasActiveDebt:  interview.HasActiveDebt,
		Message: fmt.Sprintf("Credit interview complete. Score updated from %d to %d",
			previousScore, newScore),
		ClosingMessage: "Thank you for the interview. You can now submit a new limit-increase request for analysis.",
	}, nil
}

// computeScore applies the weighted formula. The +1 in the denominator is a
// deliberate guard against zero fixed expenses.
func computeScore(income, expenses decimal.Decimal, employmentW, dependentW, debtW int64) int {
	ratio := income.Div(expenses.Add(decimal.NewFromInt(1)))
	raw := ratio.Mul(decimal.NewFromInt(incomeWeight)).
		Add(decimal.NewFromInt(employmentW + dependentW + debtW))
	return storex.ClampScore(raw.IntPart())
}
