package routes

import (
	"fundilink/handlers"
	"fundilink/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers the provider read endpoints.
func RegisterProviderRoutes(r *gin.Engine, h *handlers.ProviderHandler) {
	providers := r.Group("/api/providers")
	providers.Use(middleware.JWTAuthMiddleware())
	{
		providers.GET("/:id", h.GetProviderByIDHandler)
	}
}
