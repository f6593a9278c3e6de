package handler

import (
	"net/http"
	"strconv"

	"energypredictor/internal/service"

	"github.com/gin-gonic/gin"
)

// PredictionsHandler serves stored predictions
type PredictionsHandler struct {
	predictionService *service.PredictionService
}

// NewPredictionsHandler creates a new stored-prediction handler
func NewPredictionsHandler(predictionService *service.PredictionService) *PredictionsHandler {
	return &PredictionsHandler{predictionService: predictionService}
}

// Get handles GET /api/v1/predictions/:id
func (h *PredictionsHandler) Get(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.predictionService.GetPrediction(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Similar handles GET /api/v1/predictions/:id/similar?k=
func (h *PredictionsHandler) Similar(c *gin.Context) {
	id := c.Param("id")

	k := 0
	if raw := c.Query("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		k = n
	}

	resp, err := h.predictionService.SimilarPredictions(c.Request.Context(), id, k)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
