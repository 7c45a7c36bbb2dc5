package estimate

import (
	"encoding/json"
	"errors"
	"net/http"
)

// EstimateRequest is the request body for POST /v1/estimate.
type EstimateRequest struct {
	Description string `json:"description"`
}

// HandleEstimate handles POST /v1/estimate
func HandleEstimate(provider Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EstimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		result, err := provider.EstimateCalories(r.Context(), req.Description)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyDescription):
				writeError(w, http.StatusBadRequest, "missing_description", err.Error())
			case errors.Is(err, ErrMissingAPIKey):
				writeError(w, http.StatusBadRequest, "missing_api_key", "configure a Gemini API key in settings")
			case errors.Is(err, ErrInvalidAPIKey):
				writeError(w, http.StatusUnauthorized, "invalid_api_key", "the configured API key was rejected")
			case errors.Is(err, ErrUnavailable):
				writeError(w, http.StatusBadGateway, "estimation_unavailable", "could not reach the estimation service")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(result)
	}
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
