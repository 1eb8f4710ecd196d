package routes

import (
	"bloodlink/internal/adapters/http/handlers"
	"bloodlink/internal/adapters/http/middleware"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/config"
	"bloodlink/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	requestRepo := repositories.NewRequestRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	donationService := services.NewDonationService(donationRepo)
	requestService := services.NewRequestService(requestRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	donationHandler := handlers.NewDonationHandler(donationService)
	requestHandler := handlers.NewRequestHandler(requestService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Token verification gate shared by every protected group
	protect := middleware.Protect(cfg, userRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate-limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, protect)

	// Profile routes (authenticated users). Registered before the /users
	// group so /users/profile is not captured by /users/:id.
	profileRoutes := apiV1.Group("/users/profile")
	profileRoutes.Use(protect)
	setupProfileRoutes(profileRoutes, userHandler)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(protect)
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Donation routes
	donationRoutes := apiV1.Group("/donations")
	donationRoutes.Use(protect)
	setupDonationRoutes(donationRoutes, donationHandler)

	// Blood request routes
	requestRoutes := apiV1.Group("/requests")
	requestRoutes.Use(protect)
	setupRequestRoutes(requestRoutes, requestHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(protect)
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, protect fiber.Handler) {
	// Public routes (5 req/min/IP against credential stuffing)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Get("/me", protect, handler.Me)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", handler.ChangePassword)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
	router.Put("/:id/role", handler.SetUserRole)
}

// setupDonationRoutes configures donation routes.
// Role checks live in the service layer; the router only verifies identity.
func setupDonationRoutes(router fiber.Router, handler *handlers.DonationHandler) {
	router.Post("/", handler.Create)
	router.Get("/my", handler.ListMine)
	router.Get("/", handler.ListAll)
	router.Put("/:id", handler.UpdateStatus)
}

// setupRequestRoutes configures blood request routes
func setupRequestRoutes(router fiber.Router, handler *handlers.RequestHandler) {
	router.Post("/", handler.Create)
	router.Get("/my", handler.ListMine)
	router.Get("/", handler.ListAll)
	router.Put("/:id", handler.UpdateStatus)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	// Staff dashboard (Staff/Admin only)
	router.Get("/staff", middleware.StaffOrAdmin(), handler.GetStaffDashboard)

	// Admin dashboard (Admin only)
	router.Get("/admin", middleware.AdminOnly(), handler.GetAdminDashboard)
}
