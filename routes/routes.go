package routes

import (
	"fundilink/handlers"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers wired in main.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Provider *handlers.ProviderHandler
}

// RegisterRoutes registers all endpoints with the assembled handler bundle.
func RegisterRoutes(r *gin.Engine, b *HandlerBundle) {
	r.GET("/healthz", handlers.HealthHandler)
	RegisterBookingRoutes(r, b.Booking)
	RegisterProviderRoutes(r, b.Provider)
}
