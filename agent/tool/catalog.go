package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"

	contractx "github.com/caio126cf/bank-agent/agent/contract"
	"github.com/caio126cf/bank-agent/pkg/awesomeapi"
)

const (
	ToolAuthenticate     = "account.authenticate"
	ToolLimitIncrease    = "credit.request_limit_increase"
	ToolRecalculateScore = "credit.recalculate_score"
	ToolQuoteCurrency    = "currency.quote"
	ToolEndConversation  = "conversation.end"
)

// QuoteService is the currency-lookup collaborator consumed by the gateway.
type QuoteService interface {
	Quote(ctx context.Context, from, to string) (awesomeapi.Quote, error)
}

// Gateway dispatches tool invocations from the external agent runtime to the
// typed operations. Arguments arrive as already-parsed JSON maps; every domain
// failure is folded into a structured success=false result, never raised.
type Gateway struct {
	engine contractx.Engine
	auth   contractx.Authenticator
	quotes QuoteService
}

func NewGateway(engine contractx.Engine, auth contractx.Authenticator, quotes QuoteService) (*Gateway, error) {
	if engine == nil {
		return nil, errors.New("credit engine is required")
	}
	if auth == nil {
		return nil, errors.New("authenticator is required")
	}
	if quotes == nil {
		return nil, errors.New("quote service is required")
	}
	return &Gateway{engine: engine, auth: auth, quotes: quotes}, nil
}

func (g *Gateway) Execute(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	switch tool {
	case ToolAuthenticate:
		return g.executeAuthenticate(ctx, tool, args)
	case ToolLimitIncrease:
		return g.executeLimitIncrease(ctx, tool, args)
	case ToolRecalculateScore:
		return g.executeRecalculateScore(ctx, tool, args)
	case ToolQuoteCurrency:
		return g.executeQuote(ctx, tool, args)
	case ToolEndConversation:
		return contractx.ToolResult{
			Tool:   tool,
			Result: contractx.StatusResult{Success: true, Message: "Conversation ended."},
		}, nil
	default:
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is not available", tool),
		}, nil
	}
}

func (g *Gateway) executeAuthenticate(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	customerID, err := stringArg(args, "customer_id")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	birthDate, err := stringArg(args, "birth_date")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	result, err := g.auth.Authenticate(ctx, customerID, birthDate)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Result: contractx.Failure(err)}, nil
	}
	return contractx.ToolResult{Tool: tool, Result: result}, nil
}

func (g *Gateway) executeLimitIncrease(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	customerID, err := stringArg(args, "customer_id")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	requested, err := decimalArg(args, "requested_limit")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	result, err := g.engine.EvaluateLimitIncrease(ctx, contractx.LimitIncreaseRequest{
		CustomerID:     customerID,
		RequestedLimit: requested,
	})
	if err != nil {
		return contractx.ToolResult{Tool: tool, Result: contractx.Failure(err)}, nil
	}
	return contractx.ToolResult{Tool: tool, Result: result}, nil
}

func (g *Gateway) executeRecalculateScore(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	customerID, err := stringArg(args, "customer_id")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	income, err := decimalArg(args, "monthly_income")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	employment, err := stringArg(args, "employment_type")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	expenses, err := decimalArg(args, "fixed_expenses")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	dependents, err := intArg(args, "dependent_count")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	hasDebt, err := stringArg(args, "has_active_debt")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	result, err := g.engine.RecalculateScore(ctx, contractx.ScoreInterview{
		CustomerID:     customerID,
		MonthlyIncome:  income,
		EmploymentType: employment,
		FixedExpenses:  expenses,
		DependentCount: dependents,
		HasActiveDebt:  hasDebt,
	})
	if err != nil {
		return contractx.ToolResult{Tool: tool, Result: contractx.Failure(err)}, nil
	}
	return contractx.ToolResult{Tool: tool, Result: result}, nil
}

func (g *Gateway) executeQuote(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	from, err := stringArg(args, "from_currency")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	to, err := stringArg(args, "to_currency")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	quote, err := g.quotes.Quote(ctx, from, to)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Result: contractx.Failure(err)}, nil
	}
	return contractx.ToolResult{Tool: tool, Result: quoteResult{
		Success:        true,
		From:           quote.From,
		To:             quote.To,
		Rate:           quote.Rate,
		Message:        fmt.Sprintf("Quote %s/%s fetched successfully", quote.From, quote.To),
		ClosingMessage: "Quote done. Need another lookup?",
	}}, nil
}

type quoteResult struct {
	Success        bool            `json:"success"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Rate           decimal.Decimal `json:"rate"`
	Message        string          `json:"message"`
	ClosingMessage string          `json:"closing_message"`
}

// Infos declares the tool schemas the external LLM runtime binds to.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolAuthenticate,
			Desc: "Authenticate a customer by customer id and birth date (YYYY-MM-DD).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {Type: schema.String, Desc: "Customer identifier", Required: true},
				"birth_date":  {Type: schema.String, Desc: "Birth date, YYYY-MM-DD", Required: true},
			}),
		},
		{
			Name: ToolLimitIncrease,
			Desc: "Submit a credit-limit increase request and get the approval decision.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id":     {Type: schema.String, Desc: "Customer identifier", Required: true},
				"requested_limit": {Type: schema.Number, Desc: "Desired new credit limit", Required: true},
			}),
		},
		{
			Name: ToolRecalculateScore,
			Desc: "Recalculate the customer's credit score from credit-interview answers.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id":     {Type: schema.String, Desc: "Customer identifier", Required: true},
				"monthly_income":  {Type: schema.Number, Desc: "Monthly income", Required: true},
				"employment_type": {Type: schema.String, Desc: "formal, self-employed or unemployed", Required: true},
				"fixed_expenses":  {Type: schema.Number, Desc: "Fixed monthly expenses", Required: true},
				"dependent_count": {Type: schema.Integer, Desc: "Number of dependents", Required: true},
				"has_active_debt": {Type: schema.String, Desc: "yes or no", Required: true},
			}),
		},
		{
			Name: ToolQuoteCurrency,
			Desc: "Fetch the current exchange rate between two currencies.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"from_currency": {Type: schema.String, Desc: "Base currency code, e.g. USD", Required: true},
				"to_currency":   {Type: schema.String, Desc: "Target currency code, e.g. BRL", Required: true},
			}),
		},
		{
			Name:        ToolEndConversation,
			Desc:        "End the conversation.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
	}
}
