package requests

// CreatePropertyRequest registers a managed rental unit
type CreatePropertyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Address  string  `json:"address" binding:"required"`
	City     string  `json:"city" binding:"required"`
	State    string  `json:"state,omitempty"`
	Bedrooms int     `json:"bedrooms,omitempty"`
	Nightly  float64 `json:"nightly,omitempty"`
}

// ScheduleCleaningRequest books one turnover cleaning
type ScheduleCleaningRequest struct {
	CleanerName string `json:"cleaner_name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
}

// SendSMSRequest relays a cleaning reminder via the SMS provider
type SendSMSRequest struct {
	To           string `json:"to" binding:"required"`
	PropertyName string `json:"property_name" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	CleanerName  string `json:"cleaner_name,omitempty"`
}

// AIChatRequest is a free-form question about managed properties
type AIChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// AnalyzeListingRequest asks for optimization advice on a listing URL
type AnalyzeListingRequest struct {
	ListingURL string `json:"listing_url" binding:"required"`
}
