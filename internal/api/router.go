package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/config"
	"github.com/colective/fleet-backend-go/internal/handler"
	"github.com/colective/fleet-backend-go/internal/middleware"
	"github.com/colective/fleet-backend-go/internal/repository"
	"github.com/colective/fleet-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin engine
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	trackingRepo := repository.NewTrackingRepository(db)
	travelRepo := repository.NewTravelRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	marketRepo := repository.NewMarketRepository(db)

	trackingService := service.NewTrackingService(db, trackingRepo)
	travelService := service.NewTravelService(db, travelRepo, trackingRepo, paymentRepo, cfg.FareAmount)
	driverService := service.NewDriverService(db, driverRepo, userRepo, cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, driverRepo, cfg.JWTSecret)
	paymentService := service.NewPaymentService(db, paymentRepo)
	routeService := service.NewRouteService(routeRepo)
	marketService := service.NewMarketService(db, marketRepo)

	trackingHandler := handler.NewTrackingHandler(trackingService)
	travelHandler := handler.NewTravelHandler(travelService)
	driverHandler := handler.NewDriverHandler(driverService)
	authHandler := handler.NewAuthHandler(authService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	routeHandler := handler.NewRouteHandler(routeService)
	marketHandler := handler.NewMarketHandler(marketService)

	requireAuth := middleware.RequireAuth(authService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "fleet backend is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(300, time.Minute))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/validate", authHandler.Validate)
			auth.POST("/refresh", authHandler.Refresh)
		}

		tracking := api.Group("/tracking")
		{
			tracking.POST("", trackingHandler.Ingest)
			tracking.GET("/:travelId", trackingHandler.GetPath)
		}

		drivers := api.Group("/drivers")
		{
			drivers.POST("", driverHandler.Create)
			drivers.GET("", driverHandler.List)
			drivers.GET("/:id", driverHandler.Get)
			drivers.GET("/bycompany/:id", driverHandler.ListByCompany)
			drivers.PATCH("/:id/location", driverHandler.UpdateLocation)
			drivers.PATCH("/:id/status", driverHandler.UpdateStatus)
		}

		travels := api.Group("/travels")
		{
			travels.POST("/start", travelHandler.Start)
			travels.POST("/end", travelHandler.End)
			travels.GET("/driver/:driverId", travelHandler.ListByDriver)
			travels.POST("/incidents", travelHandler.ReportIncident)
		}

		payments := api.Group("/payments")
		{
			payments.POST("", paymentHandler.Create)
			payments.GET("", paymentHandler.ListToday)
			payments.GET("/bydriver/:id", paymentHandler.ListByDriver)
		}

		routes := api.Group("/routes")
		{
			routes.POST("", routeHandler.Create)
			routes.GET("", routeHandler.List)
			routes.GET("/:id", routeHandler.Get)
		}
		api.POST("/route-points", routeHandler.AddPoint)

		market := api.Group("/market")
		{
			market.GET("/products", marketHandler.SearchProducts)
			market.GET("/products/:id", marketHandler.GetProduct)
			market.POST("/products", requireAuth, marketHandler.CreateProduct)
			market.GET("/vendors", marketHandler.ListVendors)
			market.POST("/vendors", requireAuth, marketHandler.CreateVendor)
			market.GET("/price-types", marketHandler.ListPriceTypes)
			market.POST("/price-types", requireAuth, marketHandler.CreatePriceType)
		}
	}

	return r
}
