package handler

import (
	"errors"
	"net/http"
	"strings"

	"energypredictor/internal/inference"
	"energypredictor/internal/model"
	"energypredictor/internal/service"

	"github.com/gin-gonic/gin"
)

// PredictHandler handles prediction requests
type PredictHandler struct {
	predictionService *service.PredictionService
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictionService *service.PredictionService) *PredictHandler {
	return &PredictHandler{predictionService: predictionService}
}

// Predict handles POST /api/v1/predict. The body may be JSON or a form post.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req model.PredictRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.predictionService.Predict(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Features handles POST /api/v1/features
func (h *PredictHandler) Features(c *gin.Context) {
	var req model.PredictRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.predictionService.Derive(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeError maps service errors to HTTP status codes
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inference.ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPredictionFailed):
		cause := strings.TrimPrefix(err.Error(), service.ErrPredictionFailed.Error()+": ")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Prediction failed: " + cause})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrStoreDisabled):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error: " + err.Error()})
	}
}
