package estimate

import (
	"context"
	"errors"
)

var (
	ErrEmptyDescription = errors.New("food description is required")
	ErrMissingAPIKey    = errors.New("no API key configured")
	ErrInvalidAPIKey    = errors.New("API key rejected")
	ErrUnavailable      = errors.New("estimation service unavailable")
)

// Estimate is a single-food calorie guess.
type Estimate struct {
	FoodName string `json:"food_name"`
	Calories int    `json:"calories"`
}

// Provider estimates calories from a free-form food description.
type Provider interface {
	EstimateCalories(ctx context.Context, description string) (Estimate, error)
}

// KeySource resolves the Gemini API key at call time, so a key stored
// through the settings API takes effect without a restart.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}
