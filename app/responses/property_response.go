package responses

import "github.com/str-zone/app/models"

// PropertiesResponse lists managed units
type PropertiesResponse struct {
	Properties []models.Property `json:"properties"`
	Total      int               `json:"total"`
}

// CleaningsResponse lists the cleaning schedule for one property
type CleaningsResponse struct {
	Cleanings []models.Cleaning `json:"cleanings"`
	Total     int               `json:"total"`
}

// SMSResponse reports a relayed message
type SMSResponse struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"message_sid"`
	Message    string `json:"message"`
}

// AIChatResponse carries the assistant's reply
type AIChatResponse struct {
	Message string `json:"message"`
}

// AnalyzeListingResponse carries the raw analysis text; the model is asked
// for JSON but the payload is passed through opaquely.
type AnalyzeListingResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
}
