package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"HABITS_COLLECTION",
		"COMPLETIONS_COLLECTION",
		"EVENTS_COLLECTION",
		"POINTS_COLLECTION",
		"SESSION_COLLECTION",
		"SESSION_DURATION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()

	dbConfig := config.LoadDatabaseConfig()
	utils.InitMongoClient(dbConfig.URI, dbConfig.MaxPoolSize, dbConfig.MinPoolSize, dbConfig.MaxConnIdleTime, dbConfig.RetryWrites)

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		sessionCache, err := services.NewSessionCache(redisURL)
		if err != nil {
			log.Printf("Session cache unavailable: %v", err)
		} else {
			services.GlobalSessionCache = sessionCache
			sessionCache.StartCleanupTask()
		}

		blacklist, err := services.NewTokenBlacklist(redisURL)
		if err != nil {
			log.Printf("Token blacklist unavailable: %v", err)
		} else {
			services.TokenBlacklist = blacklist
		}

		analyticsCache, err := services.NewAnalyticsCache(redisURL, utils.GetEnvAsDuration("ANALYTICS_CACHE_TTL", 24*time.Hour))
		if err != nil {
			log.Printf("Analytics cache unavailable: %v", err)
		} else {
			services.GlobalAnalyticsCache = analyticsCache
		}
	}
}

func setupRouter(scheduler *services.ReminderScheduler) *gin.Engine {
	router := gin.Default()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	habitsRepo := repository.GetHabitsRepo(utils.MongoClient)
	completionsRepo := repository.GetCompletionsRepo(utils.MongoClient)
	pointsRepo := repository.GetPointsRepo(utils.MongoClient)
	eventsRepo := repository.GetEventsRepo(utils.MongoClient)

	habitsService := usecase.NewHabitsService(habitsRepo, completionsRepo, pointsRepo, scheduler)
	analyticsService := usecase.NewAnalyticsService(habitsService, pointsRepo, services.GlobalAnalyticsCache)
	eventsService := usecase.NewEventsService(eventsRepo, scheduler)

	habitsHandler := handler.NewHabitsHandler(habitsService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	eventsHandler := handler.NewEventsHandler(eventsService)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", handler.LoginHandler)
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", middleware.CacheControlMiddleware("60"), handler.GetUserProfileHandler)
			user.POST("/change-password", handler.ChangePasswordHandler)
			user.POST("/logout", handler.LogoutHandler)
			user.DELETE("/delete", handler.DeleteUserHandler)

			twofa := user.Group("/2fa")
			{
				twofa.POST("/generate", handler.Generate2FASecretHandler)
				twofa.POST("/enable", handler.Enable2FAHandler)
				twofa.POST("/verify", handler.Verify2FAHandler)
				twofa.POST("/disable", handler.Disable2FAHandler)
			}
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		habits := protected.Group("/habits")
		{
			habits.GET("/", habitsHandler.GetHabits)
			habits.GET("/status", habitsHandler.GetHabitsWithStatus)
			habits.POST("/", habitsHandler.CreateHabit)
			habits.PUT("/:id", habitsHandler.UpdateHabit)
			habits.DELETE("/:id", habitsHandler.DeleteHabit)
			habits.POST("/:id/complete", habitsHandler.CompleteHabit)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/", analyticsHandler.GetAnalytics)
			analytics.GET("/points", analyticsHandler.GetPointsSummary)
		}

		events := protected.Group("/events")
		{
			events.GET("/", eventsHandler.GetEvents)
			events.POST("/", eventsHandler.CreateEvent)
			events.PUT("/:id", eventsHandler.UpdateEvent)
			events.DELETE("/:id", eventsHandler.DeleteEvent)
		}
	}

	return router
}

func main() {
	scheduler := services.NewReminderScheduler(time.Local, services.LogNotifier{})
	scheduler.Start()
	defer scheduler.Stop()

	utils.StartSystemMetrics(15 * time.Second)

	router := setupRouter(scheduler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
