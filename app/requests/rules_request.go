package requests

// SubscribeRequest is an email capture forwarded to the webhook target
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	City  string `json:"city,omitempty"`
	Topic string `json:"topic,omitempty"`
}

// SaveCityRequest pins a city with its status label at check time
type SaveCityRequest struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status,omitempty"`
}
