package routes

import (
	"membership-hub/internal/adapters/http/handlers"
	"membership-hub/internal/adapters/http/middleware"
	"membership-hub/internal/adapters/persistence/repositories"
	"membership-hub/internal/config"
	"membership-hub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	cardRepo := repositories.NewMemberCardRepository(db)

	// Initialize services
	memberService := services.NewMemberService(db, memberRepo, cardRepo)
	golfService := services.NewGolfSimulatorService(cfg.Devices.GolfAPIURL)
	waterService := services.NewHydrogenWaterService(cfg.Devices.HydrogenAPIURL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	memberHandler := handlers.NewMemberHandler(memberService)
	deviceHandler := handlers.NewDeviceHandler(golfService, waterService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Every /api request passes the member IP allow-list filter first
	api := app.Group("/api", middleware.IPRestriction(memberRepo))

	setupMemberRoutes(api.Group("/members"), memberHandler)
	setupDeviceRoutes(api.Group("/devices"), deviceHandler)
}

// setupMemberRoutes configures member and card routes
func setupMemberRoutes(router fiber.Router, memberHandler *handlers.MemberHandler) {
	router.Post("/", memberHandler.CreateMember)
	router.Get("/", memberHandler.ListMembers)

	// Static segments before the :id wildcard
	router.Get("/enrollment", memberHandler.ListMembersByEnrollment)
	router.Get("/code/:code", memberHandler.GetMemberByCode)
	router.Get("/store/:storeId", memberHandler.ListMembersByStore)

	router.Get("/:id", memberHandler.GetMember)
	router.Put("/:id", memberHandler.UpdateMember)
	router.Delete("/:id", memberHandler.DeleteMember)

	router.Post("/:memberId/cards", memberHandler.IssueMemberCard)
	router.Get("/:memberId/cards", memberHandler.GetMemberCards)
}

// setupDeviceRoutes configures external device routes
func setupDeviceRoutes(router fiber.Router, deviceHandler *handlers.DeviceHandler) {
	golf := router.Group("/golf")
	golf.Post("/sessions/start", deviceHandler.StartGolfSession)
	golf.Post("/sessions/end", deviceHandler.EndGolfSession)
	golf.Get("/history/:memberId", deviceHandler.GetGolfHistory)

	water := router.Group("/hydrogen-water")
	water.Post("/usage/start", deviceHandler.StartHydrogenWaterUsage)
	water.Post("/usage/end", deviceHandler.EndHydrogenWaterUsage)
	water.Get("/history/:memberId", deviceHandler.GetHydrogenWaterHistory)
}
