package http

import (
	"github.com/gin-gonic/gin"
	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/type-room")
	group.Use(authMiddleware)
	{
		group.GET("", auth.RequireAdmin(), h.List)
	}
}
