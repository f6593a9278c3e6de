package handler

import (
	"net/http"

	"energypredictor/internal/service"

	"github.com/gin-gonic/gin"
)

// ModelsHandler describes the loaded models and feature schema
type ModelsHandler struct {
	predictionService *service.PredictionService
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(predictionService *service.PredictionService) *ModelsHandler {
	return &ModelsHandler{predictionService: predictionService}
}

// List handles GET /api/v1/models
func (h *ModelsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionService.Models())
}

// Schema handles GET /api/v1/schema
func (h *ModelsHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionService.Schema())
}
