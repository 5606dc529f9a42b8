package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icebreakapp/radar-gateway/internal/infrastructure/device"
)

type LocationHandler struct {
	provider *device.PushProvider
}

func NewLocationHandler(provider *device.PushProvider) *LocationHandler {
	return &LocationHandler{provider: provider}
}

// UpdatePositionRequest is one device fix pushed by the UI.
type UpdatePositionRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// UpdatePosition handles PUT /location
func (h *LocationHandler) UpdatePosition(c *gin.Context) {
	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	h.provider.UpdatePosition(*req.Latitude, *req.Longitude)
	c.Status(http.StatusNoContent)
}

type UpdatePermissionRequest struct {
	Granted *bool `json:"granted" binding:"required"`
}

// UpdatePermission handles PUT /location/permission; the device reports
// the outcome of its foreground permission prompt.
func (h *LocationHandler) UpdatePermission(c *gin.Context) {
	var req UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	state := device.PermissionDenied
	if *req.Granted {
		state = device.PermissionGranted
	}
	h.provider.SetPermission(state)
	c.Status(http.StatusNoContent)
}

// GetPermissionPrompt handles GET /location/permission; the UI polls it
// to learn whether the reporter wants the device to show the prompt.
func (h *LocationHandler) GetPermissionPrompt(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prompt_requested": h.provider.PermissionRequested()})
}
