package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cardvault/internal/api/handlers"
	"cardvault/internal/config"
	"cardvault/internal/services"
)

func SetupRouter(cfg *config.Config, syncService *services.SyncService, fetcher *services.FeedFetcher, valuation *services.ValuationService, snapshotService *services.SnapshotService) *gin.Engine {
	router := gin.Default()
	router.Use(MetricsMiddleware())

	// CORS configuration - allow origins from config or use defaults
	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Sync-Token"}
	router.Use(cors.New(corsConfig))

	// Initialize handlers
	cardHandler := handlers.NewCardHandler()
	holdingHandler := handlers.NewHoldingHandler()
	priceHandler := handlers.NewPriceHandler(cfg, syncService, fetcher)
	portfolioHandler := handlers.NewPortfolioHandler(valuation, snapshotService)
	adminHandler := handlers.NewAdminHandler(snapshotService)

	// API routes
	api := router.Group("/api")
	{
		cards := api.Group("/cards")
		{
			cards.GET("", cardHandler.ListCards)
			cards.POST("", cardHandler.CreateCard)
			cards.PUT("/:id", cardHandler.UpdateCard)
			cards.DELETE("/:id", cardHandler.DeleteCard)
		}

		holdings := api.Group("/holdings")
		{
			holdings.GET("", holdingHandler.ListHoldings)
			holdings.POST("", holdingHandler.AddHolding)
			holdings.PUT("/:id", holdingHandler.UpdateHolding)
			holdings.DELETE("/:id", holdingHandler.DeleteHolding)
		}

		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("/value", portfolioHandler.GetValue)
			portfolio.GET("/history", portfolioHandler.GetHistory)
			portfolio.GET("/chart.svg", portfolioHandler.GetChartSVG)
		}
	}

	// Privileged routes. init-db and sync-prices accept GET too so they
	// stay clickable from a browser.
	admin := router.Group("/admin", AuthRequired(cfg))
	{
		admin.POST("/init-db", adminHandler.InitDB)
		admin.GET("/init-db", adminHandler.InitDB)
		admin.POST("/sync-prices", priceHandler.SyncPrices)
		admin.GET("/sync-prices", priceHandler.SyncPrices)
		admin.POST("/import-prices", priceHandler.ImportPrices)
		admin.GET("/feed-probe", priceHandler.FeedProbe)
		admin.POST("/snapshot", adminHandler.ForceSnapshot)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
