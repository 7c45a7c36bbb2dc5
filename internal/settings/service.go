package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/mfreitas/bariatrack/internal/statestore"
)

// APIKeyStorageKey is the storage key of the user-provided Gemini key.
const APIKeyStorageKey = "gemini_api_key"

const (
	SourceStored = "stored"
	SourceEnv    = "env"
)

var ErrEmptyAPIKey = errors.New("api key is required")

// Service manages the Gemini API key. A key stored through the API
// takes priority over the environment one.
type Service struct {
	storage statestore.Store
	envKey  string
}

func NewService(storage statestore.Store, envKey string) *Service {
	return &Service{storage: storage, envKey: strings.TrimSpace(envKey)}
}

// APIKey resolves the effective key. Implements the key source the
// estimation provider calls on every request.
func (s *Service) APIKey(ctx context.Context) (string, error) {
	stored, err := s.storage.Get(ctx, APIKeyStorageKey)
	if err != nil {
		if errors.Is(err, statestore.ErrNotFound) {
			return s.envKey, nil
		}
		return "", err
	}

	key := strings.TrimSpace(string(stored))
	if key == "" {
		return s.envKey, nil
	}
	return key, nil
}

// Describe reports the key status without revealing it.
func (s *Service) Describe(ctx context.Context) (APIKeyResponse, error) {
	stored, err := s.storage.Get(ctx, APIKeyStorageKey)
	if err != nil && !errors.Is(err, statestore.ErrNotFound) {
		return APIKeyResponse{}, err
	}

	key := ""
	source := ""
	if err == nil {
		key = strings.TrimSpace(string(stored))
		source = SourceStored
	}
	if key == "" && s.envKey != "" {
		key = s.envKey
		source = SourceEnv
	}
	if key == "" {
		return APIKeyResponse{Configured: false}, nil
	}

	return APIKeyResponse{
		Configured: true,
		Source:     source,
		MaskedKey:  maskKey(key),
		Warning:    keyFormatWarning(key),
	}, nil
}

// Store saves a user-provided key.
func (s *Service) Store(ctx context.Context, key string) (APIKeyResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return APIKeyResponse{}, ErrEmptyAPIKey
	}

	if err := s.storage.Set(ctx, APIKeyStorageKey, []byte(key)); err != nil {
		return APIKeyResponse{}, err
	}

	return APIKeyResponse{
		Configured: true,
		Source:     SourceStored,
		MaskedKey:  maskKey(key),
		Warning:    keyFormatWarning(key),
	}, nil
}

// Delete removes the stored key; the env key (if any) takes over.
func (s *Service) Delete(ctx context.Context) error {
	return s.storage.Delete(ctx, APIKeyStorageKey)
}

// keyFormatWarning flags keys that do not look like Google AI Studio
// keys. The key is stored anyway; the format is a hint, not a rule.
func keyFormatWarning(key string) string {
	if strings.HasPrefix(key, "AIza") {
		return ""
	}
	return "key does not look like a Google AI Studio key (expected AIza... prefix)"
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
