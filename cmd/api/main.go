package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lsestacionamento/parking-api/internal/application/service"
	"github.com/lsestacionamento/parking-api/internal/config"
	"github.com/lsestacionamento/parking-api/internal/infrastructure/database"
	"github.com/lsestacionamento/parking-api/internal/infrastructure/repository"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/handler"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/routes"
	"github.com/lsestacionamento/parking-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Resolve the lot's timezone once; every timestamp in the API is
	// interpreted in it.
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %s: %v", cfg.App.Timezone, err)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	ticketRepo := repository.NewTicketRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	ticketService := service.NewTicketService(ticketRepo, cfg.Tariff, loc)
	reportService := service.NewReportService(ticketRepo, loc)
	printerService := service.NewPrinterService(thermalPrinter, ticketRepo, cfg.Printer, cfg.Pix.Key, loc)
	pixService := service.NewPixService(cfg.Pix.Key)

	// Initialize handlers
	handlers := &routes.Handlers{
		Ticket:  handler.NewTicketHandler(ticketService),
		Report:  handler.NewReportHandler(reportService),
		Printer: handler.NewPrinterHandler(printerService),
		Pix:     handler.NewPixHandler(pixService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
