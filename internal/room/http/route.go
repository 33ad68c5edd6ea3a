package http

import (
	"github.com/gin-gonic/gin"
	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/room")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", auth.RequireAdmin(), h.Create)
		group.PUT("/:id", auth.RequireAdmin(), h.Update)
		group.DELETE("/:id", auth.RequireAdmin(), h.Delete)
	}
}
