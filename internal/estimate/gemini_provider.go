package estimate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mfreitas/bariatrack/internal/config"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider estimates calories through the Gemini generateContent
// API with a JSON response schema.
type GeminiProvider struct {
	keys       KeySource
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiProvider(cfg *config.Config, keys KeySource) *GeminiProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}

	return &GeminiProvider{
		keys:    keys,
		model:   cfg.GeminiModel,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *GeminiProvider) EstimateCalories(ctx context.Context, description string) (Estimate, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Estimate{}, ErrEmptyDescription
	}

	apiKey, err := p.keys.APIKey(ctx)
	if err != nil {
		return Estimate{}, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return Estimate{}, ErrMissingAPIKey
	}

	payload := generateContentRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(
				"Estimate the calories for this food: %q. Reply with a short food name and a single integer calorie estimate.",
				description,
			)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: geminiSchema{
				Type: "OBJECT",
				Properties: map[string]geminiSchema{
					"foodName": {Type: "STRING"},
					"calories": {Type: "NUMBER"},
				},
				Required: []string{"foodName", "calories"},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Estimate{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Estimate{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isInvalidKeyResponse(resp.StatusCode, responseBody) {
			return Estimate{}, ErrInvalidAPIKey
		}
		return Estimate{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return Estimate{}, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	text := stripJSONFences(parsed.Candidates[0].Content.Parts[0].Text)

	var result struct {
		FoodName string  `json:"foodName"`
		Calories float64 `json:"calories"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return Estimate{}, fmt.Errorf("%w: malformed estimate payload", ErrUnavailable)
	}
	if strings.TrimSpace(result.FoodName) == "" {
		result.FoodName = description
	}
	if result.Calories < 0 {
		result.Calories = 0
	}

	return Estimate{
		FoodName: strings.TrimSpace(result.FoodName),
		Calories: int(result.Calories),
	}, nil
}

// isInvalidKeyResponse detects the API-key rejection shape of the
// Gemini error envelope.
func isInvalidKeyResponse(status int, body []byte) bool {
	if status != http.StatusBadRequest && status != http.StatusForbidden && status != http.StatusUnauthorized {
		return false
	}
	text := string(body)
	return strings.Contains(text, "API_KEY_INVALID") || strings.Contains(text, "API key not valid")
}

// stripJSONFences removes a markdown code fence the model sometimes
// wraps around the JSON payload despite the response schema.
func stripJSONFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

type generateContentRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string       `json:"responseMimeType"`
	ResponseSchema   geminiSchema `json:"responseSchema"`
}

type geminiSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]geminiSchema `json:"properties,omitempty"`
	Required   []string                `json:"required,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
