package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires availability endpoints. The public path lives
// under /bookings to stay compatible with the booking widget.
func RegisterRoutes(public *gin.RouterGroup, admin *gin.RouterGroup, h *Handler) {
	public.GET("/bookings/availability/:date", h.GetFree)

	admin.GET("/availability", h.GetAll)
	admin.POST("/availability", h.Publish)
}
