package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/audiencias")

	group.GET("/conflitos", h.Conflicts)
	group.POST("/horarios-livres", h.FreeSlots)
	group.GET("/horarios-livres/rapido", h.QuickFreeSlots)
}
