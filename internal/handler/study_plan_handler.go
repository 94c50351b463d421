package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/service"
	"github.com/studifund/studifund-api/internal/utils"
)

// StudyPlanHandler exposes study plan endpoints.
type StudyPlanHandler struct {
	service service.StudyPlanService
	logger  zerolog.Logger
}

// NewStudyPlanHandler constructs a study plan handler.
func NewStudyPlanHandler(service service.StudyPlanService, logger zerolog.Logger) *StudyPlanHandler {
	return &StudyPlanHandler{
		service: service,
		logger:  logger.With().Str("component", "study_plan_handler").Logger(),
	}
}

// Register wires study plan routes.
func (h *StudyPlanHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
}

func (h *StudyPlanHandler) create(c *fiber.Ctx) error {
	var payload dto.StudyPlanCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	plan, err := h.service.Create(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("study plan creation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "creation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "study plan created", plan)
}

func (h *StudyPlanHandler) list(c *fiber.Ctx) error {
	plans, err := h.service.List(c.UserContext(), actorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("study plan listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "listing failed")
	}

	return utils.SendSuccess(c, "study plans", plans)
}
