package routes

import (
	"roombook/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoomRoutes registers the room directory endpoints.
func RegisterRoomRoutes(r *gin.Engine, rh *handlers.RoomHandler) {
	api := r.Group("/api/rooms")
	{
		api.GET("", rh.ListRoomsHandler)
	}
}

// RegisterBookingRoutes registers the schedule endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler, ah *handlers.AIHandler) {
	api := r.Group("/api/bookings")
	{
		api.GET("", bh.ListBookingsHandler)
		api.POST("", bh.CreateBookingHandler)
		api.DELETE("/:id", bh.CancelBookingHandler)
		api.POST("/parse", ah.ParseBookingHandler) // Single-shot natural language parse
	}
}

// RegisterAIRoutes registers the conversational booking endpoints.
func RegisterAIRoutes(r *gin.Engine, ah *handlers.AIHandler) {
	api := r.Group("/api/ai")
	{
		api.POST("/converse", ah.ConverseHandler)
	}
}

// RegisterHealthRoutes registers liveness probes.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}
