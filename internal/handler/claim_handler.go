package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/middleware"
	"github.com/studifund/studifund-api/internal/service"
	"github.com/studifund/studifund-api/internal/utils"
)

// ClaimHandler exposes the claim lifecycle endpoints.
type ClaimHandler struct {
	service     service.ClaimService
	submitLimit fiber.Handler
	logger      zerolog.Logger
}

// NewClaimHandler constructs a claim handler. submitLimit guards the
// submission endpoint and may be nil in tests.
func NewClaimHandler(service service.ClaimService, submitLimit fiber.Handler, logger zerolog.Logger) *ClaimHandler {
	return &ClaimHandler{
		service:     service,
		submitLimit: submitLimit,
		logger:      logger.With().Str("component", "claim_handler").Logger(),
	}
}

// Register wires claim routes. All of them require a session; the summary
// and the review decision are admin-only.
func (h *ClaimHandler) Register(router fiber.Router) {
	submitHandlers := []fiber.Handler{}
	if h.submitLimit != nil {
		submitHandlers = append(submitHandlers, h.submitLimit)
	}
	submitHandlers = append(submitHandlers, h.submit)

	router.Post("/", submitHandlers...)
	router.Get("/", h.list)
	router.Get("/summary", middleware.RequireAdmin(), h.summary)
	router.Get("/:id", h.get)
	router.Put("/:id/status", middleware.RequireAdmin(), h.review)
}

func (h *ClaimHandler) submit(c *fiber.Ctx) error {
	var payload dto.ClaimCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	claim, err := h.service.Submit(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("claim submission failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "submission failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "claim submitted", claim)
}

func (h *ClaimHandler) list(c *fiber.Ctx) error {
	claims, err := h.service.List(c.UserContext(), actorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("claim listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "listing failed")
	}

	return utils.SendSuccess(c, "claims", claims)
}

func (h *ClaimHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid claim id")
	}

	claim, err := h.service.Get(c.UserContext(), actorFromContext(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClaimNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "claim not found")
		case errors.Is(err, service.ErrNotClaimOwner):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("claim lookup failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "lookup failed")
		}
	}

	return utils.SendSuccess(c, "claim", claim)
}

func (h *ClaimHandler) review(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid claim id")
	}

	var payload dto.ClaimStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	claim, err := h.service.Review(c.UserContext(), actorFromContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClaimNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "claim not found")
		case errors.Is(err, service.ErrInvalidStatusTarget):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("claim review failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "review failed")
		}
	}

	return utils.SendSuccess(c, "claim reviewed", claim)
}

func (h *ClaimHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("claim summary failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "summary failed")
	}

	return utils.SendSuccess(c, "claim summary", summary)
}
