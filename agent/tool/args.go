package tool

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Argument maps come straight from JSON tool calls, so numbers arrive as
// float64 and everything else as strings.

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func decimalArg(args map[string]any, key string) (decimal.Decimal, error) {
	raw, ok := args[key]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s is required", key)
	}
	switch value := raw.(type) {
	case float64:
		return decimal.NewFromFloat(value), nil
	case int:
		return decimal.NewFromInt(int64(value)), nil
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%s must be a number", key)
		}
		return parsed, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%s must be a number", key)
	}
}

func intArg(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch value := raw.(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(value), nil
	case int:
		return value, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}
