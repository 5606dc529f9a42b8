package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/usecase/radar"
)

type RadarHandler struct {
	radarUseCase *radar.UseCase
}

func NewRadarHandler(radarUseCase *radar.UseCase) *RadarHandler {
	return &RadarHandler{radarUseCase: radarUseCase}
}

type RadarResponse struct {
	RadarEnabled bool `json:"radar_enabled"`
}

// UpdateRadarRequest carries the privacy toggle.
type UpdateRadarRequest struct {
	RadarEnabled *bool `json:"radar_enabled" binding:"required"`
}

// GetRadar handles GET /radar
func (h *RadarHandler) GetRadar(c *gin.Context) {
	enabled, err := h.radarUseCase.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load radar preference"})
		return
	}
	c.JSON(http.StatusOK, RadarResponse{RadarEnabled: enabled})
}

// UpdateRadar handles PUT /radar
func (h *RadarHandler) UpdateRadar(c *gin.Context) {
	var req UpdateRadarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.radarUseCase.SetEnabled(c.Request.Context(), *req.RadarEnabled); err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no active session"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update radar preference"})
		return
	}

	c.JSON(http.StatusOK, RadarResponse{RadarEnabled: *req.RadarEnabled})
}
