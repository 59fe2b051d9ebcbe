package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	healthHandler := handlers.NewHealthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	reservationHandler := handlers.NewReservationHandler(facade)
	inquiryHandler := handlers.NewInquiryHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	api.POST("/inquiries", inquiryHandler.Submit)

	user := api.Group("")
	user.Use(middleware.AuthRequired(facade))
	user.POST("/orders", orderHandler.Create)
	user.GET("/orders", orderHandler.List)
	user.GET("/orders/:id", orderHandler.Get)
	user.POST("/reservations", reservationHandler.Create)
	user.GET("/reservations", reservationHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/sweep", adminHandler.Sweep)
	admin.GET("/orders/:id", adminHandler.Order)
	admin.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)
	admin.GET("/reservations", adminHandler.Reservations)
	admin.PATCH("/reservations/:id", adminHandler.UpdateReservationStatus)
	admin.GET("/inquiries", adminHandler.Inquiries)

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
