package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	authed := g.Group("")
	authed.Use(authMiddleware)
	{
		authed.GET("/me", h.Me)
		authed.GET("/logout", h.Logout)
		authed.GET("/user/:id", h.Get)
		authed.PUT("/user/password", h.ChangePassword)
	}
}
