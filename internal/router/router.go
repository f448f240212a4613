package router

import (
	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/config"
	"github.com/lamnt/koctrack-backend/internal/app/controller"
	"github.com/lamnt/koctrack-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	storeController      *controller.StoreController
	influencerController *controller.InfluencerController
	bookingController    *controller.BookingController
	trafficController    *controller.TrafficController
	userController       *controller.UserController
	overviewController   *controller.OverviewController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	storeController *controller.StoreController,
	influencerController *controller.InfluencerController,
	bookingController *controller.BookingController,
	trafficController *controller.TrafficController,
	userController *controller.UserController,
	overviewController *controller.OverviewController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		storeController:      storeController,
		influencerController: influencerController,
		bookingController:    bookingController,
		trafficController:    trafficController,
		userController:       userController,
		overviewController:   overviewController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "KOCTRACK API is running",
		})
	})

	// Serve static files from uploads directory
	router.Static("/uploads", "./uploads")

	api := router.Group("/api")
	{
		api.POST("/login", r.authController.Login)

		// Everything below requires a valid session token
		authed := api.Group("")
		authed.Use(r.authMiddleware.Authenticate())
		{
			authed.POST("/logout", r.authController.Logout)

			stores := authed.Group("/stores")
			{
				stores.GET("", r.storeController.ListStores)
				stores.POST("", r.storeController.CreateStore)
				stores.PUT("/:id", r.storeController.UpdateStore)
				stores.DELETE("/:id", r.storeController.DeleteStore)
			}

			influencers := authed.Group("/influencers")
			{
				influencers.GET("", r.influencerController.ListInfluencers)
				influencers.POST("", r.influencerController.CreateInfluencer)
				influencers.PUT("/:id", r.influencerController.UpdateInfluencer)
				influencers.DELETE("/:id", r.influencerController.DeleteInfluencer)

				influencers.GET("/:id/files", r.influencerController.ListFiles)
				influencers.POST("/:id/files", r.influencerController.CreateFile)
				influencers.GET("/:id/files/:fileId", r.influencerController.GetFile)
				influencers.DELETE("/:id/files/:fileId", r.influencerController.DeleteFile)
			}

			bookings := authed.Group("/bookings")
			{
				bookings.GET("", r.bookingController.ListBookings)
				bookings.GET("/export", r.bookingController.ExportBookings)
				bookings.POST("", r.bookingController.CreateBooking)
				bookings.PUT("/:id", r.bookingController.UpdateBooking)
				bookings.DELETE("/:id", r.bookingController.DeleteBooking)
			}

			traffic := authed.Group("/traffic")
			{
				traffic.GET("", r.trafficController.ListTrafficLogs)
				traffic.POST("", r.trafficController.CreateTrafficLog)
				traffic.POST("/fetch", r.trafficController.FetchMetrics)
				traffic.PUT("/:id", r.trafficController.UpdateTrafficLog)
			}

			users := authed.Group("/users")
			{
				users.GET("", r.userController.ListUsers)
				users.POST("", r.userController.CreateUser)
				users.PUT("/:id/password", r.userController.UpdatePassword)
			}

			authed.GET("/overview", r.overviewController.GetOverview)
			authed.GET("/export", r.overviewController.Export)
			authed.POST("/uploads", r.uploadController.Upload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
