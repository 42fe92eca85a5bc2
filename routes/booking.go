package routes

import (
	"fundilink/handlers"
	"fundilink/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the discovery and
// assignment engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/discovery", h.DiscoverProviders)              // discover and rank candidates
		api.POST("/bookings", h.CreateBooking)                   // resolve and commit the binding
		api.GET("/bookings/:id", h.GetBooking)                   // fetch a committed booking
		api.PATCH("/bookings/:id/status", h.UpdateBookingStatus) // status state machine
	}
}
