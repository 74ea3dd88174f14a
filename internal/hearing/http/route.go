package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the hearing CRUD under /audiencias. Reads are public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/audiencias")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	authGroup := group.Group("")
	authGroup.Use(authMiddleware)
	{
		authGroup.POST("", h.Create)
		authGroup.PATCH("/:id", h.Update)
		authGroup.DELETE("/:id", h.Delete)
	}
}
