package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/moodline/backend/internal/config"
	"github.com/moodline/backend/internal/handlers"
	"github.com/moodline/backend/internal/logger"
	"github.com/moodline/backend/internal/middleware"
	"github.com/moodline/backend/internal/repository"
	"github.com/moodline/backend/internal/service"
	"github.com/moodline/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for local development; ignored when absent
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	logger.SetDefault(logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	}))

	logger.Info("starting moodline API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	// Initialize Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Initialize repositories
	entryRepo := repository.NewMoodEntryRepository(supabaseClient)
	streakRepo := repository.NewStreakRepository(supabaseClient)
	snapshotRepo := repository.NewSnapshotRepository(supabaseClient)

	// Enrichment is optional; without an API key analyses are purely statistical
	var enricher service.Enricher
	if cfg.OpenAI.APIKey != "" {
		enricher = service.NewOpenAIEnricher(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		logger.Info("analysis enrichment enabled", logger.String("model", cfg.OpenAI.Model))
	}

	// Initialize services
	entryService := service.NewMoodEntryService(entryRepo, snapshotRepo)
	analysisService := service.NewAnalysisService(entryRepo, snapshotRepo, enricher, cfg.OpenAI.Timeout)
	streakService := service.NewStreakService(entryRepo, streakRepo)

	// Initialize handlers
	entryHandler := handlers.NewMoodEntryHandler(entryService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	streakHandler := handlers.NewStreakHandler(streakService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.Default()

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			// Mood entry routes
			protected.GET("/entries", entryHandler.GetEntries)
			protected.POST("/entries", entryHandler.CreateEntry)
			protected.GET("/entries/:id", entryHandler.GetEntry)
			protected.PUT("/entries/:id", entryHandler.UpdateEntry)
			protected.DELETE("/entries/:id", entryHandler.DeleteEntry)

			// Analytics routes get a tighter rate limit since analysis
			// runs fan out to storage and the enrichment provider
			analytics := protected.Group("/analytics")
			analytics.Use(middleware.RateLimitAnalytics())
			{
				analytics.GET("/analysis", analysisHandler.GetAnalysis)
				analytics.GET("/summary", analysisHandler.GetSummary)
				analytics.GET("/recommendations", analysisHandler.GetRecommendations)
				analytics.GET("/streaks", streakHandler.GetStreaks)
			}
		}
	}

	logger.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
