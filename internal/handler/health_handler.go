package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/utils"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db      *gorm.DB
	appName string
	logger  zerolog.Logger
}

// NewHealthHandler constructs a health handler.
func NewHealthHandler(db *gorm.DB, appName string, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		appName: appName,
		logger:  logger.With().Str("component", "health_handler").Logger(),
	}
}

// Register wires the health route.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	status := "ok"
	database := "up"

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			h.logger.Error().Err(err).Msg("database health check failed")
			status = "degraded"
			database = "down"
		}
	}

	return utils.SendSuccess(c, "health", fiber.Map{
		"app":      h.appName,
		"status":   status,
		"database": database,
		"time":     time.Now().UTC(),
	})
}
