package tools

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Params holds decoded tool call arguments. JSON numbers arrive as
// float64 and clients sometimes send numerics as strings, so accessors
// coerce instead of type-asserting.
type Params map[string]interface{}

// ParseParams decodes raw tool call arguments
func ParseParams(raw json.RawMessage) (Params, error) {
	params := make(Params)
	if len(raw) == 0 {
		return params, nil
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return params, nil
}

// Has reports whether the argument was provided
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the argument as a string, or "" when absent
func (p Params) String(key string) string {
	value, ok := p[key]
	if !ok {
		return ""
	}
	return cast.ToString(value)
}

// RequireString returns the argument as a non-empty string
func (p Params) RequireString(key string) (string, error) {
	value := p.String(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// RequireInt returns the argument coerced to int, failing when absent
// or not coercible
func (p Params) RequireInt(key string) (int, error) {
	value, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}

	coerced, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return coerced, nil
}

// Int returns the argument coerced to int, or fallback when absent or
// not coercible
func (p Params) Int(key string, fallback int) int {
	value, ok := p[key]
	if !ok {
		return fallback
	}

	coerced, err := cast.ToIntE(value)
	if err != nil {
		return fallback
	}
	return coerced
}

// Bool returns the argument coerced to bool, or fallback when absent or
// not coercible
func (p Params) Bool(key string, fallback bool) bool {
	value, ok := p[key]
	if !ok {
		return fallback
	}

	coerced, err := cast.ToBoolE(value)
	if err != nil {
		return fallback
	}
	return coerced
}
