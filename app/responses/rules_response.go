package responses

import (
	"github.com/str-zone/app/models"
	"github.com/str-zone/internal/matcher"
)

// RulesResponse answers GET /v1/rules. Rows is always an array; City echoes
// the sanitized filter or null in full-inventory mode.
type RulesResponse struct {
	Rows  []models.RuleRecord `json:"rows"`
	Total int                 `json:"total"`
	City  *string             `json:"city"`
}

// GeocodeResponse answers GET /v1/rules/geocode
type GeocodeResponse struct {
	City          *string `json:"city"`
	FullPlaceName *string `json:"fullPlaceName"`
}

// CheckResponse answers GET /v1/rules/check: the full pipeline output.
// Matched and StatusLabel are null unless the resolved city matched exactly
// one jurisdiction key; Suggestions only appear on a miss.
type CheckResponse struct {
	Rows         []models.RuleRecord  `json:"rows"`
	Total        int                  `json:"total"`
	ResolvedCity string               `json:"resolved_city"`
	Matched      *models.RuleRecord   `json:"matched"`
	StatusLabel  *string              `json:"status_label"`
	Suggestions  []matcher.Suggestion `json:"suggestions,omitempty"`
}

// SavedCitiesResponse lists pinned cities
type SavedCitiesResponse struct {
	Cities []models.SavedCity `json:"cities"`
	Total  int                `json:"total"`
}

// QuotaResponse reports free-check usage for a client
type QuotaResponse struct {
	Used      int64 `json:"used"`
	Limit     int   `json:"limit"`
	Exhausted bool  `json:"exhausted"`
}

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code
	Message string `json:"message"` // human-readable detail
}

// SuccessResponse is the uniform plain-ack envelope
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// HealthCheckResponse answers the health endpoints
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// Error codes
const (
	CodeMissingQuery    = "MISSING_QUERY"
	CodeMissingConfig   = "MISSING_CONFIG"
	CodeMalformedSheet  = "MALFORMED_SHEET"
	CodeUpstreamGeocode = "UPSTREAM_GEOCODE"
	CodeUpstreamSheet   = "UPSTREAM_SHEET"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicateCity   = "DUPLICATE_CITY"
	CodeStoreError      = "STORE_ERROR"
	CodeSMSError        = "SMS_ERROR"
	CodeAIError         = "AI_ERROR"
	CodeWebhookError    = "WEBHOOK_ERROR"
)
