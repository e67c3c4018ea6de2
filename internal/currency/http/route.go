package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(public *gin.RouterGroup, h *Handler) {
	public.POST("/currency/convert", h.Convert)
}
