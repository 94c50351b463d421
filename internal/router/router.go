package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/studifund/studifund-api/internal/config"
	"github.com/studifund/studifund-api/internal/handler"
	"github.com/studifund/studifund-api/internal/middleware"
	"github.com/studifund/studifund-api/internal/observability"
)

// Dependencies collects the handlers and stores the router needs.
type Dependencies struct {
	Sessions      *session.Store
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Claims        *handler.ClaimHandler
	Academic      *handler.AcademicHandler
	StudyPlans    *handler.StudyPlanHandler
	Notifications *handler.NotificationHandler
	Uploads       *handler.UploadHandler
	Health        *handler.HealthHandler
}

// Register mounts every route on the app. Health and metrics stay outside the
// session pipeline; everything under /api resolves the session first so
// handlers can read user_id/user_role from locals.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")
	deps.Health.Register(api)

	api.Use(middleware.LoadSession(deps.Sessions))

	deps.Auth.Register(api.Group("/auth"))
	deps.Users.Register(api.Group("/users"))

	deps.Claims.Register(api.Group("/claims", middleware.RequireAuthenticated()))
	deps.Academic.Register(api.Group("/academic-records", middleware.RequireAuthenticated()))
	deps.Academic.RegisterCourses(api.Group("/courses", middleware.RequireAuthenticated()))
	deps.StudyPlans.Register(api.Group("/study-plans", middleware.RequireAuthenticated()))
	deps.Notifications.Register(api.Group("/notifications", middleware.RequireAuthenticated()))
	deps.Uploads.Register(api.Group("/upload", middleware.RequireAuthenticated()))
}
