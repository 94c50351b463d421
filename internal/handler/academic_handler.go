package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/service"
	"github.com/studifund/studifund-api/internal/utils"
)

// AcademicHandler exposes academic record and course endpoints.
type AcademicHandler struct {
	service service.AcademicService
	logger  zerolog.Logger
}

// NewAcademicHandler constructs an academic record handler.
func NewAcademicHandler(service service.AcademicService, logger zerolog.Logger) *AcademicHandler {
	return &AcademicHandler{
		service: service,
		logger:  logger.With().Str("component", "academic_handler").Logger(),
	}
}

// Register wires academic record routes.
func (h *AcademicHandler) Register(router fiber.Router) {
	router.Post("/", h.createRecord)
	router.Get("/", h.listRecords)
	router.Get("/:id", h.getRecord)
	router.Delete("/:id", h.deleteRecord)
	router.Get("/:id/courses", h.listCourses)
}

// RegisterCourses wires the course creation route under its own prefix.
func (h *AcademicHandler) RegisterCourses(router fiber.Router) {
	router.Post("/", h.addCourse)
}

func (h *AcademicHandler) createRecord(c *fiber.Ctx) error {
	var payload dto.AcademicRecordCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.CreateRecord(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("academic record creation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "creation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "academic record created", record)
}

func (h *AcademicHandler) listRecords(c *fiber.Ctx) error {
	records, err := h.service.ListRecords(c.UserContext(), actorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("academic record listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "listing failed")
	}

	return utils.SendSuccess(c, "academic records", records)
}

func (h *AcademicHandler) getRecord(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid record id")
	}

	record, err := h.service.GetRecord(c.UserContext(), actorFromContext(c), id)
	if err != nil {
		return h.recordError(c, err, "academic record lookup failed")
	}

	return utils.SendSuccess(c, "academic record", record)
}

func (h *AcademicHandler) deleteRecord(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid record id")
	}

	if err := h.service.DeleteRecord(c.UserContext(), actorFromContext(c), id); err != nil {
		return h.recordError(c, err, "academic record deletion failed")
	}

	return utils.SendSuccess(c, "academic record deleted", nil)
}

func (h *AcademicHandler) listCourses(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid record id")
	}

	courses, err := h.service.ListCourses(c.UserContext(), actorFromContext(c), id)
	if err != nil {
		return h.recordError(c, err, "course listing failed")
	}

	return utils.SendSuccess(c, "courses", courses)
}

func (h *AcademicHandler) addCourse(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	course, err := h.service.AddCourse(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCourseStatus):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.recordError(c, err, "course creation failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course added", course)
}

func (h *AcademicHandler) recordError(c *fiber.Ctx, err error, logMessage string) error {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "academic record not found")
	case errors.Is(err, service.ErrNotRecordOwner):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(logMessage)
		return utils.SendError(c, fiber.StatusInternalServerError, "request failed")
	}
}
