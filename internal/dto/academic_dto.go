package dto

import (
	"time"

	"github.com/studifund/studifund-api/internal/models"
)

// AcademicRecordCreateRequest describes one semester summary submission.
type AcademicRecordCreateRequest struct {
	Semester     string   `json:"semester" validate:"required,max=64"`
	Year         int      `json:"year" validate:"required,min=2000,max=2100"`
	GPA          *float64 `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	TotalCredits *int     `json:"total_credits" validate:"omitempty,gte=0,lte=60"`
	IsCompleted  bool     `json:"is_completed"`
}

// CourseCreateRequest describes a subject added under an academic record.
type CourseCreateRequest struct {
	AcademicRecordID uint    `json:"academic_record_id" validate:"required"`
	Name             string  `json:"name" validate:"required,min=2,max=255"`
	Credits          int     `json:"credits" validate:"required,min=1,max=12"`
	Grade            *string `json:"grade" validate:"omitempty,max=8"`
	Status           string  `json:"status" validate:"omitempty,oneof=Passed Failed 'In Progress' Planned"`
}

// AcademicRecordResponse is the serialized semester summary.
type AcademicRecordResponse struct {
	ID           uint             `json:"id"`
	UserID       uint             `json:"user_id"`
	Semester     string           `json:"semester"`
	Year         int              `json:"year"`
	GPA          *float64         `json:"gpa"`
	TotalCredits *int             `json:"total_credits"`
	IsCompleted  bool             `json:"is_completed"`
	Courses      []CourseResponse `json:"courses,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CourseResponse is the serialized subject row.
type CourseResponse struct {
	ID               uint      `json:"id"`
	AcademicRecordID uint      `json:"academic_record_id"`
	Name             string    `json:"name"`
	Credits          int       `json:"credits"`
	Grade            *string   `json:"grade"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewAcademicRecordResponse converts a model into a DTO.
func NewAcademicRecordResponse(model models.AcademicRecord) AcademicRecordResponse {
	return AcademicRecordResponse{
		ID:           model.ID,
		UserID:       model.UserID,
		Semester:     model.Semester,
		Year:         model.Year,
		GPA:          model.GPA,
		TotalCredits: model.TotalCredits,
		IsCompleted:  model.IsCompleted,
		Courses:      NewCourseResponseSlice(model.Courses),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewAcademicRecordResponseSlice converts a slice of models into DTOs.
func NewAcademicRecordResponseSlice(records []models.AcademicRecord) []AcademicRecordResponse {
	responses := make([]AcademicRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewAcademicRecordResponse(record))
	}

	return responses
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:               model.ID,
		AcademicRecordID: model.AcademicRecordID,
		Name:             model.Name,
		Credits:          model.Credits,
		Grade:            model.Grade,
		Status:           model.Status,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	if len(courses) == 0 {
		return nil
	}

	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}

	return responses
}
