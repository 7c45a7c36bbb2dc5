package estimate

import (
	"strings"

	"github.com/mfreitas/bariatrack/internal/config"
)

const (
	ModeMock   = "mock"
	ModeGemini = "gemini"
)

func NewProvider(cfg *config.Config, keys KeySource) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.AIMode))
	if mode == "" {
		mode = ModeMock
	}

	switch mode {
	case ModeGemini:
		return NewGeminiProvider(cfg, keys)
	default:
		return NewMockProvider()
	}
}
