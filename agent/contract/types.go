package contract

import (
	"github.com/shopspring/decimal"

	storex "github.com/caio126cf/bank-agent/agent/store"
)

type EmploymentType string

const (
	EmploymentFormal       EmploymentType = "formal"
	EmploymentSelfEmployed EmploymentType = "self-employed"
	EmploymentUnemployed   EmploymentType = "unemployed"
)

type DebtFlag string

const (
	DebtYes DebtFlag = "yes"
	DebtNo  DebtFlag = "no"
)

type LimitIncreaseRequest struct {
	CustomerID     string          `json:"customer_id"`
	RequestedLimit decimal.Decimal `json:"requested_limit"`
}

type LimitIncreaseResult struct {
	Success            bool            `json:"success"`
	CustomerID         string          `json:"customer_id"`
	CurrentLimit       decimal.Decimal `json:"current_limit"`
	RequestedLimit     decimal.Decimal `json:"requested_limit"`
	Status             storex.Decision `json:"status"`
	MaxAllowedForScore decimal.Decimal `json:"max_allowed_for_score"`
	Message            string          `json:"message"`
	ClosingMessage     string          `json:"closing_message,omitempty"`
}

// ScoreInterview carries the financial attributes collected during a credit
// interview. EmploymentType and HasActiveDebt are matched case-insensitively.
type ScoreInterview struct {
	CustomerID     string          `json:"customer_id"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	EmploymentType string          `json:"employment_type"`
	FixedExpenses  decimal.Decimal `json:"fixed_expenses"`
	DependentCount int             `json:"dependent_count"`
	HasActiveDebt  string          `json:"has_active_debt"`
}

type ScoreRecalcResult struct {
	Success        bool            `json:"success"`
	CustomerID     string          `json:"customer_id"`
	PreviousScore  int             `json:"previous_score"`
	NewScore       int             `json:"new_score"`
	ScoreDelta     int             `json:"score_delta"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	EmploymentType string          `json:"employment_type"`
	FixedExpenses  decimal.Decimal `json:"fixed_expenses"`
	DependentCount int             `json:"dependent_count"`
	HasActiveDebt  string          `json:"has_active_debt"`
	Message        string          `json:"message"`
	ClosingMessage string          `json:"closing_message,omitempty"`
}

type CustomerIdentity struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	BirthDate  string `json:"birth_date"`
}

type AuthResult struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Customer *CustomerIdentity `json:"customer,omitempty"`
}

// StatusResult is the minimal structured envelope used when an operation has no
// richer payload: failure folding at the tool boundary and the conversation-end
// acknowledgement.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Failure converts an operation error into the structured failure envelope the
// caller contract requires; nothing propagates as a raised fault past a tool.
func Failure(err error) StatusResult {
	return StatusResult{Success: false, Message: err.Error()}
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
