package routes

import (
	"time"

	"eventhire/internal/adapters/http/handlers"
	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"
	"eventhire/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Dependencies are the shared resources the routes are built from
type Dependencies struct {
	Store    repositories.Store
	Config   *config.Config
	Notifier services.Notifier
	// Storage backs the rate limiters; nil keeps them in memory
	Storage fiber.Storage
	Logger  *zap.Logger
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize services
	authService := services.NewAuthService(deps.Store, cfg.JWT, logger)
	moderationService := services.NewModerationService(deps.Store, cfg.Moderation, logger)
	requestService := services.NewJobRequestService(deps.Store, deps.Notifier, cfg.Workflow, logger)
	jobService := services.NewJobService(deps.Store, logger)
	applicationService := services.NewApplicationService(deps.Store, moderationService, logger)
	ratingService := services.NewRatingService(deps.Store, logger)
	dashboardService := services.NewDashboardService(deps.Store)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Store, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg, logger)
	moderationHandler := handlers.NewModerationHandler(moderationService, logger)
	requestHandler := handlers.NewJobRequestHandler(requestService, logger)
	jobHandler := handlers.NewJobHandler(jobService, logger)
	applicationHandler := handlers.NewApplicationHandler(applicationService, logger)
	ratingHandler := handlers.NewRatingHandler(ratingService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, auth, deps.Storage)
	setupJobRequestRoutes(apiV1.Group("/job-requests"), requestHandler, auth)
	setupJobRoutes(apiV1.Group("/jobs"), jobHandler, applicationHandler, auth)
	setupModerationRoutes(apiV1, moderationHandler, ratingHandler, auth, deps.Storage)

	// Seeker routes
	apiV1.Get("/applications/my", auth, middleware.SeekerOnly(), middleware.NoCacheHeaders(), applicationHandler.ListMine)

	// Dashboard routes (Admin only)
	apiV1.Get("/dashboard", auth, middleware.AdminOnly(), middleware.NoCacheHeaders(), dashboardHandler.GetAdminDashboard)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler, storage fiber.Storage) {
	limit := middleware.AuthRateLimiter(storage)

	// Public routes
	router.Post("/register/seeker", limit, handler.RegisterSeeker)
	router.Post("/register/company", limit, handler.RegisterCompany)
	router.Post("/login", limit, handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", auth, middleware.NoCacheHeaders(), handler.Me)
	router.Post("/logout-all", auth, handler.LogoutAll)
}

// setupJobRequestRoutes configures submission (Company) and review (Admin) routes
func setupJobRequestRoutes(router fiber.Router, handler *handlers.JobRequestHandler, auth fiber.Handler) {
	router.Use(auth)

	// Company
	router.Post("/", middleware.CompanyOnly(), handler.Submit)
	router.Get("/my", middleware.CompanyOnly(), handler.ListMine)

	// Admin
	router.Get("/", middleware.AdminOnly(), handler.List)
	router.Get("/:id", middleware.AdminOnly(), handler.GetByID)
	router.Post("/:id/approve", middleware.AdminOnly(), handler.Approve)
	router.Post("/:id/reject", middleware.AdminOnly(), handler.Reject)
}

// setupJobRoutes configures job and application routes
func setupJobRoutes(router fiber.Router, jobs *handlers.JobHandler, applications *handlers.ApplicationHandler, auth fiber.Handler) {
	// Static paths before :id
	router.Get("/my", auth, middleware.CompanyOnly(), middleware.PrivateCacheHeaders(30*time.Second), jobs.ListMine)

	// Public routes
	router.Get("/", jobs.ListOpen)
	router.Get("/:id", jobs.GetByID)

	router.Post("/:id/apply", auth, middleware.SeekerOnly(), applications.Apply)
	router.Get("/:id/applications", auth, middleware.CompanyOrAdmin(), applications.ListForJob)

	// Admin
	router.Put("/:id/archive", auth, middleware.AdminOnly(), jobs.Archive)
	router.Put("/:id/complete", auth, middleware.AdminOnly(), jobs.Complete)
}

// setupModerationRoutes configures red flag, rating and ban routes
func setupModerationRoutes(
	router fiber.Router,
	moderation *handlers.ModerationHandler,
	ratings *handlers.RatingHandler,
	auth fiber.Handler,
	storage fiber.Storage,
) {
	strict := middleware.StrictRateLimiter(storage)

	router.Post("/red-flags", auth, middleware.CompanyOrAdmin(), strict, moderation.RecordRedFlag)
	router.Get("/seekers/:id/stats", auth, middleware.CompanyOrAdmin(), moderation.GetSeekerStats)
	router.Post("/ratings", auth, middleware.CompanyOnly(), strict, ratings.Rate)

	// Admin
	router.Get("/bans", auth, middleware.AdminOnly(), moderation.ListBans)
	router.Get("/seekers/:id/ban", auth, middleware.AdminOnly(), moderation.GetBanStatus)
}
