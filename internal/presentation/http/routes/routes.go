package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lsestacionamento/parking-api/internal/config"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/handler"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Ticket  *handler.TicketHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
	Pix     *handler.PixHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Per-client rate limiter
	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	registerTicketRoutes(router, h)
	registerPrinterRoutes(router, h)

	router.POST("/gerar-ticket-escpos", h.Printer.GenerateEscpos)
	router.POST("/gerar-pix", h.Pix.GenerateCharge)

	return router
}

func registerTicketRoutes(router *gin.Engine, h *Handlers) {
	tickets := router.Group("/tickets")
	{
		tickets.POST("", h.Ticket.Create)
		tickets.GET("", h.Ticket.ListActive)
		tickets.PUT("/:id/finalizer", h.Ticket.Finalize)
		tickets.GET("/history", h.Ticket.History)
		tickets.DELETE("/history", h.Ticket.PurgeHistory)
		tickets.GET("/pdf", h.Report.TicketsPDF)
	}
}

func registerPrinterRoutes(router *gin.Engine, h *Handlers) {
	printerGroup := router.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
