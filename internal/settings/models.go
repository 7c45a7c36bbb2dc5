package settings

// APIKeyResponse is the response for GET /v1/settings/apikey. The key
// itself never leaves the server; only a masked preview does.
type APIKeyResponse struct {
	Configured bool   `json:"configured"`
	Source     string `json:"source,omitempty"` // stored | env
	MaskedKey  string `json:"masked_key,omitempty"`
	Warning    string `json:"warning,omitempty"`
}

// PutAPIKeyRequest is the request body for PUT /v1/settings/apikey.
type PutAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
