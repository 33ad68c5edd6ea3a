package http

import (
	"github.com/gin-gonic/gin"
	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reservation")
	group.Use(authMiddleware)
	{
		group.POST("", auth.RequireClient(), h.Create)
		group.GET("", auth.RequireAdmin(), h.ListAll)
		group.GET("/client", auth.RequireClient(), h.ListMine)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Cancel)
	}
}
