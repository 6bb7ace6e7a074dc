package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/str-zone/app/responses"
	"github.com/str-zone/app/services"
)

// AdminController handles operational endpoints for the client-state store
type AdminController struct {
	store  services.ICityStore
	logger *zap.Logger
}

// NewAdminController creates the controller
func NewAdminController(store services.ICityStore, logger *zap.Logger) *AdminController {
	return &AdminController{
		store:  store,
		logger: logger,
	}
}

// GetStats reports store usage
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.store.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Data:    stats,
	})
}

// ClearStore wipes all saved cities and counters
func (ac *AdminController) ClearStore(c *gin.Context) {
	if err := ac.store.Clear(c.Request.Context()); err != nil {
		ac.logger.Error("store clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeStoreError,
			Message: err.Error(),
		})
		return
	}

	ac.logger.Info("store cleared")
	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "store cleared",
	})
}
