package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/str-zone/app/requests"
	"github.com/str-zone/app/responses"
	"github.com/str-zone/app/services"
	"github.com/str-zone/internal/external"
	"github.com/str-zone/internal/geocode"
	"github.com/str-zone/internal/sheet"
)

// RulesController handles the rule lookup and resolution endpoints
type RulesController struct {
	rulesService *services.RulesService
	webhook      *external.WebhookClient
	logger       *zap.Logger
	startTime    time.Time
}

// NewRulesController creates the controller
func NewRulesController(rulesService *services.RulesService, webhook *external.WebhookClient, logger *zap.Logger) *RulesController {
	return &RulesController{
		rulesService: rulesService,
		webhook:      webhook,
		logger:       logger,
		startTime:    time.Now(),
	}
}

// pipelineError maps pipeline failures to status code plus error code
func pipelineError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingConfig), errors.Is(err, geocode.ErrNotConfigured):
		return http.StatusInternalServerError, responses.CodeMissingConfig
	case errors.Is(err, sheet.ErrMalformedSheet):
		return http.StatusInternalServerError, responses.CodeMalformedSheet
	case errors.Is(err, geocode.ErrUpstream):
		return http.StatusBadGateway, responses.CodeUpstreamGeocode
	case errors.Is(err, services.ErrUpstreamSheet):
		return http.StatusBadGateway, responses.CodeUpstreamSheet
	default:
		return http.StatusInternalServerError, responses.CodeUpstreamSheet
	}
}

// GetRules returns rule rows, optionally filtered by ?city=. No city means
// the full inventory; an unknown city means an empty list, not an error.
func (rc *RulesController) GetRules(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))

	rows, err := rc.rulesService.Lookup(c.Request.Context(), city)
	if err != nil {
		status, code := pipelineError(err)
		c.JSON(status, responses.ErrorResponse{
			Error:   code,
			Message: err.Error(),
		})
		return
	}

	var cityEcho *string
	if city != "" {
		cityEcho = &city
	}
	c.JSON(http.StatusOK, responses.RulesResponse{
		Rows:  rows,
		Total: len(rows),
		City:  cityEcho,
	})
}

// Geocode resolves ?q= to a city via the geocoder. No features is a valid
// all-null answer, not an error.
func (rc *RulesController) Geocode(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeMissingQuery,
			Message: "query parameter q is required",
		})
		return
	}

	result, err := rc.rulesService.Geocode(c.Request.Context(), query)
	if err != nil {
		status, code := pipelineError(err)
		c.JSON(status, responses.ErrorResponse{
			Error:   code,
			Message: err.Error(),
		})
		return
	}

	resp := responses.GeocodeResponse{}
	if result != nil {
		if result.City != "" {
			city := result.City
			resp.City = &city
		}
		if result.FullPlaceName != "" {
			place := result.FullPlaceName
			resp.FullPlaceName = &place
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Check runs the full pipeline for ?q=: geocode, fetch, filter, classify
func (rc *RulesController) Check(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeMissingQuery,
			Message: "query parameter q is required",
		})
		return
	}

	result, err := rc.rulesService.Check(c.Request.Context(), query)
	if err != nil {
		status, code := pipelineError(err)
		c.JSON(status, responses.ErrorResponse{
			Error:   code,
			Message: err.Error(),
		})
		return
	}

	resp := responses.CheckResponse{
		Rows:         result.Records,
		Total:        len(result.Records),
		ResolvedCity: result.ResolvedCity,
		Matched:      result.Matched,
		Suggestions:  result.Suggestions,
	}
	if result.StatusLabel != "" {
		label := result.StatusLabel
		resp.StatusLabel = &label
	}
	c.JSON(http.StatusOK, resp)
}

// Export streams the full inventory back out as CSV
func (rc *RulesController) Export(c *gin.Context) {
	csv, err := rc.rulesService.Export(c.Request.Context())
	if err != nil {
		status, code := pipelineError(err)
		c.JSON(status, responses.ErrorResponse{
			Error:   code,
			Message: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="str-rules.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// Subscribe captures an email and forwards it to the webhook target
func (rc *RulesController) Subscribe(c *gin.Context) {
	var req requests.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	if !rc.webhook.Configured() {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeMissingConfig,
			Message: "webhook target not configured",
		})
		return
	}

	payload := map[string]string{
		"email":     req.Email,
		"city":      req.City,
		"topic":     req.Topic,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := rc.webhook.Forward(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:   responses.CodeWebhookError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "subscribed",
	})
}

// HealthCheck reports process liveness
func (rc *RulesController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(rc.startTime).String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"rules":   "healthy",
			"geocode": "healthy",
		},
	})
}
