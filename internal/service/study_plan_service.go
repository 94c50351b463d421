package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/repository"
)

// StudyPlanService manages forward-looking semester plans.
type StudyPlanService interface {
	Create(ctx context.Context, actor Actor, req dto.StudyPlanCreateRequest) (dto.StudyPlanResponse, error)
	List(ctx context.Context, actor Actor) ([]dto.StudyPlanResponse, error)
}

type studyPlanService struct {
	plans     repository.StudyPlanRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudyPlanService constructs a study plan service.
func NewStudyPlanService(plans repository.StudyPlanRepository, validate *validator.Validate, logger zerolog.Logger) StudyPlanService {
	return &studyPlanService{
		plans:     plans,
		validator: validate,
		logger:    logger.With().Str("component", "study_plan_service").Logger(),
	}
}

func (s *studyPlanService) Create(ctx context.Context, actor Actor, req dto.StudyPlanCreateRequest) (dto.StudyPlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudyPlanResponse{}, err
	}

	courses := make([]string, 0, len(req.PlannedCourses))
	for _, name := range req.PlannedCourses {
		courses = append(courses, strings.TrimSpace(name))
	}

	encoded, err := json.Marshal(courses)
	if err != nil {
		return dto.StudyPlanResponse{}, err
	}

	plan := models.StudyPlan{
		UserID:         actor.ID,
		Semester:       strings.TrimSpace(req.Semester),
		Year:           req.Year,
		PlannedCourses: datatypes.JSON(encoded),
		TargetCredits:  req.TargetCredits,
	}

	if err := s.plans.Create(ctx, &plan); err != nil {
		return dto.StudyPlanResponse{}, err
	}

	return dto.NewStudyPlanResponse(plan), nil
}

func (s *studyPlanService) List(ctx context.Context, actor Actor) ([]dto.StudyPlanResponse, error) {
	var (
		plans []models.StudyPlan
		err   error
	)

	if actor.IsAdmin() {
		plans, err = s.plans.ListAll(ctx)
	} else {
		plans, err = s.plans.ListByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewStudyPlanResponseSlice(plans), nil
}
