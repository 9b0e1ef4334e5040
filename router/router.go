package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/clean-connect/controllers"
	"github.com/yeremiapane/clean-connect/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.RequireJSON())

	// Rate limiter per-IP (50 requests per detik) untuk seluruh endpoint
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	requestCtrl := controllers.NewRequestController(db)
	serviceCtrl := controllers.NewServiceController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Listing publik tanpa auth
	r.GET("/users", userCtrl.GetAllUsers)
	r.GET("/cleaner_services", serviceCtrl.GetAllCleanerServices)

	// Seed database (development only, destruktif)
	r.POST("/seed", adminCtrl.SeedDatabase)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.PUT("/update_profile", userCtrl.UpdateProfile)

		auth.POST("/connect_with_cleaner", requestCtrl.ConnectWithCleaner)
		auth.POST("/select_cleaner", requestCtrl.SelectCleaner)
		auth.PUT("/requests/:request_id/update_status", requestCtrl.UpdateRequestStatus)
	}

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.DispatchHandler)
	}

	return r
}
