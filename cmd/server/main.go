package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"pulse-backend/internal/database"
	"pulse-backend/internal/handlers"
	customMiddleware "pulse-backend/internal/middleware"
	"pulse-backend/internal/repository"
	"pulse-backend/internal/seed"
	"pulse-backend/internal/slack"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	// Required env vars
	mongoURI := getEnv("MONGODB_URI", "")
	dbName := getEnv("DB_NAME", "pulse")
	jwtSecret := getEnv("JWT_SECRET", "")
	port := getEnv("PORT", "8080")
	adminEmails := strings.Split(getEnv("ADMIN_EMAILS", ""), ",")

	if mongoURI == "" {
		log.Fatal("❌ MONGODB_URI is required")
	}
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	// Connect to MongoDB
	if err := database.Connect(mongoURI, dbName); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(context.Background())

	// Initialize repositories
	userRepo := repository.NewUserRepo()
	tokenRepo := repository.NewAuthTokenRepo()
	feedbackRepo := repository.NewFeedbackRepo()
	periodRepo := repository.NewPeriodRepo()
	templateRepo := repository.NewTemplateRepo()

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create user indexes: %v", err)
	}
	if err := tokenRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create token indexes: %v", err)
	}
	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create feedback indexes: %v", err)
	}
	if err := periodRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create period indexes: %v", err)
	}
	if err := templateRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create template indexes: %v", err)
	}

	// Seed starter question templates on first boot
	if getEnv("SEED_TEMPLATES", "true") == "true" {
		if err := seed.EnsureDefaultTemplates(ctx, templateRepo); err != nil {
			log.Printf("⚠️  Warning: failed to seed question templates: %v", err)
		}
	}

	// Initialize Slack notifier (mock)
	notifier := slack.NewMockSlack()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(tokenRepo, userRepo, jwtSecret, adminEmails)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo, periodRepo, userRepo, notifier)
	periodHandler := handlers.NewPeriodHandler(periodRepo, templateRepo)
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	statsHandler := handlers.NewStatsHandler(feedbackRepo)
	userHandler := handlers.NewUserHandler(userRepo)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pulse-backend"}`))
	})

	// Public routes (no auth required)
	r.Post("/auth/request", authHandler.RequestLogin)
	r.Get("/auth/verify", authHandler.VerifyToken)

	// Protected routes (JWT required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(jwtSecret))

		r.Get("/periods", feedbackHandler.ListEligiblePeriods)
		r.Get("/periods/{id}", feedbackHandler.GetPeriod)
		r.Post("/feedback", feedbackHandler.SubmitFeedback)
		r.Get("/feedback/mine", feedbackHandler.ListMySubmissions)
		r.Get("/user/me", userHandler.GetMe)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.AdminOnly)

			r.Get("/admin/periods", periodHandler.ListPeriods)
			r.Post("/admin/periods", periodHandler.CreatePeriod)
			r.Patch("/admin/periods/{id}/active", periodHandler.SetActive)
			r.Delete("/admin/periods/{id}", periodHandler.DeletePeriod)

			r.Get("/admin/templates", templateHandler.ListTemplates)
			r.Post("/admin/templates", templateHandler.CreateTemplate)
			r.Put("/admin/templates/{id}", templateHandler.UpdateTemplate)
			r.Delete("/admin/templates/{id}", templateHandler.DeleteTemplate)

			r.Get("/admin/stats", statsHandler.GetStats)
			r.Get("/admin/feedbacks", statsHandler.ListFeedbacks)
		})
	})

	// Start server
	log.Printf("🚀 Pulse backend starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
