package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires booking endpoints. rateLimit applies only to
// the public flow and may be nil.
func RegisterRoutes(public *gin.RouterGroup, admin *gin.RouterGroup, h *Handler, rateLimit gin.HandlerFunc) {
	group := public.Group("/bookings")
	if rateLimit != nil {
		group.Use(rateLimit)
	}
	{
		group.POST("/initiate", h.Initiate)
		group.POST("/verify/:id", h.Verify)
	}

	admin.GET("/bookings", h.List)
	admin.GET("/bookings/:id", h.Get)
	admin.POST("/bookings/expire", h.Expire)
}
