package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/str-zone/app/models"
	"github.com/str-zone/app/requests"
	"github.com/str-zone/app/responses"
	"github.com/str-zone/app/services"
	"github.com/str-zone/internal/external"
)

const aiSystemPrompt = "You are a helpful assistant for short-term rental property managers. " +
	"You answer questions about managing rental properties, turnover cleanings, " +
	"guest communication, pricing, and local short-term rental regulations. " +
	"Keep answers practical and concise."

// PropertyController handles managed units, cleaning schedules, SMS
// reminders and the AI helper endpoints
type PropertyController struct {
	propertyService *services.PropertyService
	twilio          *external.TwilioClient
	anthropic       *external.AnthropicClient
	logger          *zap.Logger
}

// NewPropertyController creates the controller
func NewPropertyController(propertyService *services.PropertyService, twilio *external.TwilioClient, anthropic *external.AnthropicClient, logger *zap.Logger) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
		twilio:          twilio,
		anthropic:       anthropic,
		logger:          logger,
	}
}

// CreateProperty registers a managed unit
func (pc *PropertyController) CreateProperty(c *gin.Context) {
	var req requests.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	prop, err := pc.propertyService.CreateProperty(c.Request.Context(), &models.Property{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Bedrooms: req.Bedrooms,
		Nightly:  req.Nightly,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, responses.SuccessResponse{
		Success: true,
		Data:    prop,
	})
}

// ListProperties returns all managed units
func (pc *PropertyController) ListProperties(c *gin.Context) {
	props, err := pc.propertyService.ListProperties(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.PropertiesResponse{
		Properties: props,
		Total:      len(props),
	})
}

// DeleteProperty removes a unit and its cleanings
func (pc *PropertyController) DeleteProperty(c *gin.Context) {
	err := pc.propertyService.DeleteProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   responses.CodeNotFound,
				Message: "property not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true})
}

// ScheduleCleaning books a turnover cleaning for a property
func (pc *PropertyController) ScheduleCleaning(c *gin.Context) {
	var req requests.ScheduleCleaningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	cleaning, err := pc.propertyService.ScheduleCleaning(c.Request.Context(), c.Param("id"), &models.Cleaning{
		CleanerName: req.CleanerName,
		Phone:       req.Phone,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   responses.CodeNotFound,
				Message: "property not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, responses.SuccessResponse{
		Success: true,
		Data:    cleaning,
	})
}

// ListCleanings returns a property's cleaning schedule
func (pc *PropertyController) ListCleanings(c *gin.Context) {
	cleanings, err := pc.propertyService.ListCleanings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   responses.CodeNotFound,
				Message: "property not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.CleaningsResponse{
		Cleanings: cleanings,
		Total:     len(cleanings),
	})
}

// UpdateCleaningStatus moves a cleaning between scheduled/done/cancelled
func (pc *PropertyController) UpdateCleaningStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=scheduled done cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	err := pc.propertyService.UpdateCleaningStatus(c.Request.Context(), c.Param("cleaningID"), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   responses.CodeNotFound,
				Message: "cleaning not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true})
}

// SendSMS relays a cleaning reminder through the SMS provider
func (pc *PropertyController) SendSMS(c *gin.Context) {
	var req requests.SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	if !pc.twilio.Configured() {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeMissingConfig,
			Message: "sms provider not configured",
		})
		return
	}

	cleaner := req.CleanerName
	if cleaner == "" {
		cleaner = "there"
	}
	body := fmt.Sprintf(
		"Hi %s! You have a cleaning scheduled at %s on %s at %s. Reply DONE when complete. - STR Zone",
		cleaner, req.PropertyName, req.Date, req.Time)

	sid, err := pc.twilio.SendSMS(c.Request.Context(), req.To, body)
	if err != nil {
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:   responses.CodeSMSError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SMSResponse{
		Success:    true,
		MessageSID: sid,
		Message:    body,
	})
}

// AIChat answers a free-form property management question
func (pc *PropertyController) AIChat(c *gin.Context) {
	var req requests.AIChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	if !pc.anthropic.Configured() {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeMissingConfig,
			Message: "ai provider not configured",
		})
		return
	}

	reply, err := pc.anthropic.Complete(c.Request.Context(), aiSystemPrompt, req.Message, 1024)
	if err != nil {
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:   responses.CodeAIError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.AIChatResponse{Message: reply})
}

// AnalyzeListing asks the model for optimization advice on a listing URL.
// The analysis text is passed through opaquely.
func (pc *PropertyController) AnalyzeListing(c *gin.Context) {
	var req requests.AnalyzeListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	if !pc.anthropic.Configured() {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeMissingConfig,
			Message: "ai provider not configured",
		})
		return
	}

	prompt := fmt.Sprintf(
		"Analyze this short-term rental listing and suggest improvements to the "+
			"title, description, pricing and photos. Respond as JSON with keys "+
			"\"strengths\", \"weaknesses\" and \"suggestions\". Listing URL: %s",
		req.ListingURL)

	analysis, err := pc.anthropic.Complete(c.Request.Context(), aiSystemPrompt, prompt, 2048)
	if err != nil {
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:   responses.CodeAIError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.AnalyzeListingResponse{
		Success:  true,
		Analysis: analysis,
	})
}
