package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/workhive/workhive-api/internal/authz"
	"github.com/workhive/workhive-api/internal/config"
	"github.com/workhive/workhive-api/internal/constants"
	"github.com/workhive/workhive-api/internal/database"
	"github.com/workhive/workhive-api/internal/handlers"
	"github.com/workhive/workhive-api/internal/logger"
	"github.com/workhive/workhive-api/internal/metrics"
	"github.com/workhive/workhive-api/internal/middleware"
	"github.com/workhive/workhive-api/internal/repository"
	"github.com/workhive/workhive-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zap.L().Sync()
	}()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.Middleware())
	r.Use(metrics.Middleware(cfg.ServiceName))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		zap.L().Fatal("Failed to create Redis store", zap.Error(err))
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		zap.L().Warn("OPENAI_API_KEY not set, AI features disabled")
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	promptRepo := repository.NewPromptRepository(db)

	// The gate fronts every destructive mutation: role check, then
	// operation preconditions, then PIN confirmation.
	gate := authz.NewGate(orgRepo)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo, gate)
	taskService := services.NewTaskService(taskRepo, orgRepo, gate, aiService)
	libraryService := services.NewLibraryService(libraryRepo, gate)
	promptService := services.NewPromptService(promptRepo, gate, aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	taskHandler := handlers.NewTaskHandler(taskService)
	libraryHandler := handlers.NewLibraryHandler(libraryService)
	promptHandler := handlers.NewPromptHandler(promptService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.ServiceName,
		})
	})

	// Prometheus metrics endpoint
	r.GET("/metrics", metrics.Handler())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.POST("/join", orgHandler.JoinOrganization)

			withOrg := orgs.Group("/:id", middleware.RequireOrganizationAccess())
			{
				withOrg.GET("", orgHandler.GetOrganization)
				withOrg.PUT("", middleware.RequireOrganizationOwner(), orgHandler.UpdateOrganization)
				withOrg.DELETE("", orgHandler.DeleteOrganization)
				withOrg.PUT("/pin", orgHandler.SetPin)
				withOrg.POST("/regenerate-code", middleware.RequireOrganizationOwner(), orgHandler.RegenerateInviteCode)
				withOrg.DELETE("/members/:user_id", orgHandler.RemoveMember)
				withOrg.PUT("/members/:user_id/role", orgHandler.ChangeMemberRole)

				// Resource library
				withOrg.POST("/categories", libraryHandler.CreateCategory)
				withOrg.GET("/categories", libraryHandler.ListCategories)
				withOrg.PUT("/categories/:category_id", libraryHandler.RenameCategory)
				withOrg.DELETE("/categories/:category_id", libraryHandler.DeleteCategory)
				withOrg.POST("/resources", libraryHandler.CreateResource)
				withOrg.GET("/resources", libraryHandler.ListResources)
				withOrg.GET("/resources/:resource_id", libraryHandler.GetResource)
				withOrg.PATCH("/resources/:resource_id", libraryHandler.UpdateResource)
				withOrg.DELETE("/resources/:resource_id", libraryHandler.DeleteResource)

				// Prompt library
				withOrg.POST("/prompts", promptHandler.CreatePrompt)
				withOrg.GET("/prompts", promptHandler.ListPrompts)
				withOrg.GET("/prompts/:prompt_id", promptHandler.GetPrompt)
				withOrg.PATCH("/prompts/:prompt_id", promptHandler.UpdatePrompt)
				withOrg.DELETE("/prompts/:prompt_id", promptHandler.DeletePrompt)
				withOrg.POST("/prompts/draft", promptHandler.DraftPrompt)
			}
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.POST("/:id/toggle", middleware.RequireTaskAccess(), taskHandler.ToggleTaskStatus)
			tasks.POST("/:id/assign", middleware.RequireTaskAccess(), taskHandler.AssignTask)
			tasks.POST("/:id/unassign", middleware.RequireTaskAccess(), taskHandler.UnassignTask)
		}
	}

	// Start server
	zap.L().Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.L().Fatal("Failed to start server", zap.Error(err))
	}
}
