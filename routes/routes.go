package routes

import (
	"net/http"
	"time"

	"rentnest/handlers"
	"rentnest/middleware"
	"rentnest/services/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and shared dependencies route
// registration needs.
type HandlerBundle struct {
	Tokens   user.TokenProvider
	User     *handlers.UserHandler
	Property *handlers.PropertyHandler
	Booking  *handlers.BookingHandler
	Enquiry  *handlers.EnquiryHandler
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.Authenticate)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware(hb.Tokens))
		api.GET("/me", hb.User.Me)
		api.PUT("/me", hb.User.Update)
		api.PUT("/me/password", hb.User.UpdatePassword)
		api.PUT("/me/device-token", hb.User.UpdateFCMToken)
		api.DELETE("/me", hb.User.Delete)
		api.POST("/signout", hb.User.SignOut)

		api.GET("/me/wishlist", hb.User.GetWishlist)
		api.PUT("/me/wishlist/:propertyID", hb.User.AddToWishlist)
		api.DELETE("/me/wishlist/:propertyID", hb.User.RemoveFromWishlist)
	}
}

// RegisterPropertyRoutes registers listing endpoints. Browsing is public;
// landlord management requires authentication.
func RegisterPropertyRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/properties")
	{
		api.GET("", hb.Property.Search)
		api.GET("/:id", hb.Property.GetByID)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.Tokens))
		protected.POST("", hb.Property.Create)
		protected.GET("/mine/all", hb.Property.Mine)
		protected.PUT("/:id", hb.Property.Update)
		protected.DELETE("/:id", hb.Property.Delete)
		protected.POST("/:id/photos", hb.Property.UploadPhoto)
		protected.DELETE("/:id/photos/:photoID", hb.Property.DeletePhoto)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.AuthMiddleware(hb.Tokens))
		bookingGroup.POST("/quote", hb.Booking.Quote)
		bookingGroup.POST("/confirm", hb.Booking.Confirm)
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.Cancel)
		bookingGroup.POST("", hb.Booking.Submit)
		bookingGroup.GET("", hb.Booking.ListMine)
	}
}

// RegisterEnquiryRoutes sets up enquiry endpoints.
func RegisterEnquiryRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/enquiries")
	{
		api.Use(middleware.AuthMiddleware(hb.Tokens))
		api.POST("", hb.Enquiry.Create)
		api.GET("", hb.Enquiry.ListMine)
		api.GET("/property/:propertyID", hb.Enquiry.ListForProperty)
		api.PUT("/:id/answered", hb.Enquiry.MarkAnswered)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterEnquiryRoutes(r, hb)
}
