package estimate

import (
	"context"
	"strings"
)

// MockProvider returns deterministic estimates for demo mode and tests.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) EstimateCalories(_ context.Context, description string) (Estimate, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Estimate{}, ErrEmptyDescription
	}

	// Stable pseudo-estimate so repeated requests agree.
	sum := 0
	for _, r := range description {
		sum += int(r)
	}
	calories := 50 + sum%300

	return Estimate{
		FoodName: description,
		Calories: calories,
	}, nil
}
