package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/middleware"
	"github.com/studifund/studifund-api/internal/service"
	"github.com/studifund/studifund-api/internal/utils"
)

// AuthHandler manages login, logout and the current-user endpoint.
type AuthHandler struct {
	service  service.AuthService
	sessions *session.Store
	logger   zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, sessions *session.Store, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/logout", middleware.RequireAuthenticated(), h.logout)
	router.Get("/me", middleware.RequireAuthenticated(), h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("session acquisition failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	sess.Set(middleware.SessionUserIDKey, user.ID)
	sess.Set(middleware.SessionRoleKey, user.Role)
	if err := sess.Save(); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("session persistence failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	return utils.SendSuccess(c, "login successful", user)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			requestLogger(h.logger, c).Warn().Err(err).Msg("session destruction failed")
		}
	}

	return utils.SendSuccess(c, "logout successful", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, err := h.service.CurrentUser(c.UserContext(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("current user lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "lookup failed")
	}

	return utils.SendSuccess(c, "current user", user)
}
