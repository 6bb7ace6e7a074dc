package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/str-zone/app/requests"
	"github.com/str-zone/app/responses"
	"github.com/str-zone/app/services"
)

// CityController handles pinned cities and the free-check quota
type CityController struct {
	cityService *services.CityService
	logger      *zap.Logger
}

// NewCityController creates the controller
func NewCityController(cityService *services.CityService, logger *zap.Logger) *CityController {
	return &CityController{
		cityService: cityService,
		logger:      logger,
	}
}

// clientID identifies the caller for per-client state. An explicit header
// wins; otherwise the client IP stands in.
func clientID(c *gin.Context) string {
	if id := c.GetHeader("X-Client-ID"); id != "" {
		return id
	}
	return c.ClientIP()
}

// ListCities returns the caller's pinned cities
func (cc *CityController) ListCities(c *gin.Context) {
	cities, err := cc.cityService.ListCities(c.Request.Context(), clientID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SavedCitiesResponse{
		Cities: cities,
		Total:  len(cities),
	})
}

// SaveCity pins a city for the caller
func (cc *CityController) SaveCity(c *gin.Context) {
	var req requests.SaveCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	city, err := cc.cityService.SaveCity(c.Request.Context(), clientID(c), req.Name, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateCity) {
			c.JSON(http.StatusConflict, responses.ErrorResponse{
				Error:   responses.CodeDuplicateCity,
				Message: "city is already saved",
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
		Data:    city,
	})
}

// DeleteCity unpins a city by name
func (cc *CityController) DeleteCity(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "city name is required",
		})
		return
	}

	err := cc.cityService.RemoveCity(c.Request.Context(), clientID(c), name)
	if err != nil {
		if errors.Is(err, services.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   responses.CodeNotFound,
				Message: "city is not saved",
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

// MarkChecked stamps a saved city with the latest check time and status
func (cc *CityController) MarkChecked(c *gin.Context) {
	var req struct {
		Status string `json:"status,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.CodeInvalidRequest,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	err := cc.cityService.MarkChecked(c.Request.Context(), clientID(c), c.Param("name"), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   responses.CodeNotFound,
				Message: "city is not saved",
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

// Quota reports the caller's free-check usage
func (cc *CityController) Quota(c *gin.Context) {
	used, limit, err := cc.cityService.Quota(c.Request.Context(), clientID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.QuotaResponse{
		Used:      used,
		Limit:     limit,
		Exhausted: used >= int64(limit),
	})
}

// RecordCheck consumes one free check for the caller
func (cc *CityController) RecordCheck(c *gin.Context) {
	used, allowed, err := cc.cityService.RecordCheck(c.Request.Context(), clientID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.QuotaResponse{
		Used:      used,
		Limit:     cc.cityService.Limit(),
		Exhausted: !allowed,
	})
}
