package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires settings endpoints. Reads are public so the
// booking form can show the base price; writes are admin-only.
func RegisterRoutes(public *gin.RouterGroup, admin *gin.RouterGroup, h *Handler) {
	public.GET("/settings", h.Get)

	admin.GET("/settings", h.Get)
	admin.POST("/settings", h.Update)
}
