package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"

	_ "github.com/lib/pq"

	httpapi "github.com/saleem-shalabi/Medi-Care-App/internal/api/http"
	"github.com/saleem-shalabi/Medi-Care-App/internal/config"
	"github.com/saleem-shalabi/Medi-Care-App/internal/db"
	"github.com/saleem-shalabi/Medi-Care-App/internal/documents"
	"github.com/saleem-shalabi/Medi-Care-App/internal/events"
	"github.com/saleem-shalabi/Medi-Care-App/internal/logger"
	"github.com/saleem-shalabi/Medi-Care-App/internal/payment"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository/postgres"
	"github.com/saleem-shalabi/Medi-Care-App/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting MediCare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	dbConn, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	// Test database connection
	if err := dbConn.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(dbConn)

	// Initialize Event Publisher
	var publisher service.EventPublisher = events.NoopPublisher{}
	if cfg.AMQP.Enabled {
		conn, err := amqp.Dial(cfg.AMQP.URL)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", "error", err)
			log.Fatalf("Failed to connect to AMQP broker: %v", err)
		}
		defer conn.Close()

		amqpPublisher, err := events.NewPublisher(conn)
		if err != nil {
			logger.Error("Failed to initialize event publisher", "error", err)
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("Event publisher connected", "url", cfg.AMQP.URL)
	} else {
		logger.Info("Event publishing disabled")
	}

	// Initialize Collaborators
	emailSvc := service.NewSendGridEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)
	documentSvc, err := documents.NewPDFService(cfg.Documents.OutputDir, cfg.Documents.BaseURL)
	if err != nil {
		logger.Error("Failed to initialize document service", "error", err)
		log.Fatalf("Failed to initialize document service: %v", err)
	}
	provider := payment.NewStripeProvider(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret, cfg.Stripe.FrontendURL)

	// Initialize Services
	cartSvc := service.NewCartService(store)
	orderSvc := service.NewOrderService(store, emailSvc)
	paymentSvc := service.NewPaymentService(store, provider, documentSvc, emailSvc, publisher)
	contractSvc := service.NewContractService(store, emailSvc, publisher)
	maintenanceSvc := service.NewMaintenanceService(store)
	reportSvc := service.NewReportService(store)
	userLookup := service.NewUserLookup(store)

	// Initialize HTTP handlers
	handler := httpapi.NewHandler(cartSvc, orderSvc, paymentSvc, contractSvc, maintenanceSvc, reportSvc, userLookup)
	router := handler.Router()

	// Serve generated contract documents
	router.PathPrefix("/documents/").Handler(
		http.StripPrefix("/documents/", http.FileServer(http.Dir(cfg.Documents.OutputDir))))

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
