package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/naufaladrian/be-report-app/internal/config"
	"github.com/naufaladrian/be-report-app/internal/database"
	"github.com/naufaladrian/be-report-app/internal/handlers"
	"github.com/naufaladrian/be-report-app/internal/middleware"
	"github.com/naufaladrian/be-report-app/internal/routes"
	"github.com/naufaladrian/be-report-app/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Tokens signed with the built-in fallback secret are forgeable by
	// anyone who has read the source.
	if cfg.IsProduction() && cfg.HasDefaultJWTSecret() {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Connect to PostgreSQL
	log.Println("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()

	// Initialize Cloudinary
	uploader, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatal("Failed to initialize Cloudinary: ", err)
	}

	// Wire stores and services
	userStore := database.NewUserStore(db)
	reportStore := database.NewReportStore(db)
	credentials := services.NewCredentialService(userStore, cfg.JWTSecret)
	reportSvc := services.NewReportService(reportStore, uploader)

	authHandler := handlers.NewAuthHandler(credentials)
	reportHandler := handlers.NewReportHandler(reportSvc)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(handlers.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Redis-backed rate limiting is optional; skip it when no URI is set.
	if cfg.RedisURI != "" {
		log.Println("Connecting to Redis...")
		rdb, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("Warning: Redis unavailable, rate limiting disabled: %v", err)
		} else {
			defer rdb.Close()
			r.Use(middleware.RateLimit(rdb))
		}
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, authHandler, reportHandler, credentials)

	log.Printf("Report backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
