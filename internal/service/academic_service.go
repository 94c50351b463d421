package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/repository"
)

var (
	// ErrRecordNotFound indicates the academic record does not exist.
	ErrRecordNotFound = errors.New("academic record not found")
	// ErrNotRecordOwner indicates a non-admin tried to access someone else's record.
	ErrNotRecordOwner = errors.New("cannot access another user's academic record")
	// ErrInvalidCourseStatus indicates a course status outside the accepted set.
	ErrInvalidCourseStatus = errors.New("invalid course status")
)

// AcademicService manages semester summaries and their courses.
type AcademicService interface {
	CreateRecord(ctx context.Context, actor Actor, req dto.AcademicRecordCreateRequest) (dto.AcademicRecordResponse, error)
	ListRecords(ctx context.Context, actor Actor) ([]dto.AcademicRecordResponse, error)
	GetRecord(ctx context.Context, actor Actor, id uint) (dto.AcademicRecordResponse, error)
	DeleteRecord(ctx context.Context, actor Actor, id uint) error
	AddCourse(ctx context.Context, actor Actor, req dto.CourseCreateRequest) (dto.CourseResponse, error)
	ListCourses(ctx context.Context, actor Actor, recordID uint) ([]dto.CourseResponse, error)
}

type academicService struct {
	records   repository.AcademicRecordRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAcademicService constructs an academic record service.
func NewAcademicService(records repository.AcademicRecordRepository, courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) AcademicService {
	return &academicService{
		records:   records,
		courses:   courses,
		validator: validate,
		logger:    logger.With().Str("component", "academic_service").Logger(),
	}
}

func (s *academicService) CreateRecord(ctx context.Context, actor Actor, req dto.AcademicRecordCreateRequest) (dto.AcademicRecordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AcademicRecordResponse{}, err
	}

	record := models.AcademicRecord{
		UserID:       actor.ID,
		Semester:     strings.TrimSpace(req.Semester),
		Year:         req.Year,
		GPA:          req.GPA,
		TotalCredits: req.TotalCredits,
		IsCompleted:  req.IsCompleted,
	}

	if err := s.records.Create(ctx, &record); err != nil {
		return dto.AcademicRecordResponse{}, err
	}

	return dto.NewAcademicRecordResponse(record), nil
}

func (s *academicService) ListRecords(ctx context.Context, actor Actor) ([]dto.AcademicRecordResponse, error) {
	var (
		records []models.AcademicRecord
		err     error
	)

	if actor.IsAdmin() {
		records, err = s.records.ListAll(ctx)
	} else {
		records, err = s.records.ListByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewAcademicRecordResponseSlice(records), nil
}

func (s *academicService) GetRecord(ctx context.Context, actor Actor, id uint) (dto.AcademicRecordResponse, error) {
	record, err := s.ownedRecord(ctx, actor, id)
	if err != nil {
		return dto.AcademicRecordResponse{}, err
	}

	return dto.NewAcademicRecordResponse(record), nil
}

// DeleteRecord removes the record and its courses.
func (s *academicService) DeleteRecord(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.ownedRecord(ctx, actor, id); err != nil {
		return err
	}

	return s.records.Delete(ctx, id)
}

// AddCourse attaches a subject to an academic record the actor owns.
func (s *academicService) AddCourse(ctx context.Context, actor Actor, req dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CourseResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = models.CourseStatusInProgress
	}
	if !models.ValidCourseStatus(status) {
		return dto.CourseResponse{}, ErrInvalidCourseStatus
	}

	if _, err := s.ownedRecord(ctx, actor, req.AcademicRecordID); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		AcademicRecordID: req.AcademicRecordID,
		Name:             strings.TrimSpace(req.Name),
		Credits:          req.Credits,
		Grade:            req.Grade,
		Status:           status,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *academicService) ListCourses(ctx context.Context, actor Actor, recordID uint) ([]dto.CourseResponse, error) {
	if _, err := s.ownedRecord(ctx, actor, recordID); err != nil {
		return nil, err
	}

	courses, err := s.courses.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponseSlice(courses), nil
}

func (s *academicService) ownedRecord(ctx context.Context, actor Actor, id uint) (models.AcademicRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AcademicRecord{}, ErrRecordNotFound
		}
		return models.AcademicRecord{}, err
	}

	if !actor.IsAdmin() && record.UserID != actor.ID {
		return models.AcademicRecord{}, ErrNotRecordOwner
	}

	return record, nil
}
