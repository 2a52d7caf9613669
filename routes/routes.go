package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances into the HTTP surface.
func SetupRouter(
	bc *controllers.BookingController,
	rc *controllers.RefundController,
	ec *controllers.EventsController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())
	r.Use(middleware.CurrentUser())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		hotels := api.Group("/hotels")
		{
			hotels.GET("", controllers.GetHotels)
			hotels.GET("/:id", controllers.GetHotelByID)
			hotels.POST("", controllers.CreateHotel)
			hotels.PUT("/:id", controllers.UpdateHotel)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.PATCH("/:id/status", controllers.UpdateRoomStatus)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("/create-payment-intent", bc.CreatePaymentIntent)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("", bc.GetBookings)
			bookings.GET("/:id", bc.GetBookingDetails)

			bookings.PUT("/:id/approve", bc.ApproveBooking)
			bookings.PUT("/:id/reject", bc.RejectBooking)

			bookings.POST("/:id/refund", rc.IssueRefund)
			bookings.POST("/:id/request-refund", rc.RequestRefund)
			bookings.POST("/:id/reject-refund", rc.RejectRefundRequest)
		}

		api.GET("/events", ec.Stream)
	}

	return r
}
