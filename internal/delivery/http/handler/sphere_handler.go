package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icebreakapp/radar-gateway/internal/sphere"
)

type SphereHandler struct{}

func NewSphereHandler() *SphereHandler {
	return &SphereHandler{}
}

// SphereLayoutRequest carries the sphere projection inputs from the
// presentation layer; rotation comes from the drag gesture it tracks.
type SphereLayoutRequest struct {
	Count int     `form:"count,default=15" binding:"gt=0,lte=200"`
	Size  float64 `form:"size,default=390" binding:"gt=0"`
	RotX  float64 `form:"rot_x"`
	RotY  float64 `form:"rot_y"`
}

// GetLayout handles GET /sphere/layout
func (h *SphereHandler) GetLayout(c *gin.Context) {
	var req SphereLayoutRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}

	nodes := sphere.Project(req.Count, req.RotX, req.RotY, req.Size)
	c.JSON(http.StatusOK, gin.H{"nodes": nodes})
}
