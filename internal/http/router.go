package http

import (
	"net/http"
	"time"

	intconfig "hostella/internal/config"
	"hostella/internal/http/handlers"
	"hostella/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the full route table. Auth and hostel browsing are
// public, everything touching a user's bookings or payments sits behind
// the bearer token.
func NewRouter(env intconfig.Env) *gin.Engine {
	gin.SetMode(env.GinMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	api := handlers.API{Env: env}

	r.GET("/health", api.Health)
	r.GET("/health/db", api.DBCheck)
	r.Static("/uploads", env.UploadDir)

	v := r.Group("/api")
	{
		auth := v.Group("/auth")
		{
			auth.POST("/register", api.Register)
			auth.POST("/login", api.Login)
		}

		hostels := v.Group("/hostels")
		{
			hostels.GET("", api.ListHostels)
			hostels.GET("/:id", api.GetHostel)
			hostels.GET("/:id/rooms", api.ListRooms)
		}

		secured := v.Group("")
		secured.Use(middleware.RequireAuth([]byte(env.JWTSecret)))
		{
			secured.GET("/bookings/user", api.ListBookings)
			secured.POST("/bookings", api.CreateBooking)
			secured.GET("/bookings/:id", api.GetBooking)
			secured.PATCH("/bookings/:id", api.PatchBooking)
			secured.DELETE("/bookings/:id", api.DeleteBooking)
			secured.POST("/bookings/:id/cancel", api.CancelBooking)
			secured.GET("/bookings/:id/receipt", api.GetReceipt)
			secured.GET("/bookings/:id/receipt.pdf", api.GetReceiptPDF)

			secured.POST("/payments/initiate", api.InitiatePayment)
			secured.POST("/payments/:id/receipt", api.UploadPaymentReceipt)
			secured.GET("/payments/booking/:bookingId", api.ListPaymentsForBooking)
			secured.GET("/payments/verify/:reference",
				middleware.RequireRoles("admin", "staff"), api.VerifyPayment)

			secured.GET("/notifications", api.ListNotifications)
			secured.POST("/notifications/:id/read", api.MarkNotificationRead)
		}
	}

	return r
}
