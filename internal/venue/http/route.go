package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *VenueHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/varas")

	// === Public Routes ===
	group.GET("", h.List)    // List venues
	group.GET("/:id", h.Get) // Get venue details

	// === Authenticated Routes ===
	authGroup := group.Group("")
	authGroup.Use(authMiddleware)
	{
		authGroup.POST("", h.Create)       // Create venue
		authGroup.PATCH("/:id", h.Update)  // Update venue
		authGroup.DELETE("/:id", h.Delete) // Delete venue
	}
}
