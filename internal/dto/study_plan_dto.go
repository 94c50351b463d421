package dto

import (
	"encoding/json"
	"time"

	"github.com/studifund/studifund-api/internal/models"
)

// StudyPlanCreateRequest declares the courses a student intends to take.
type StudyPlanCreateRequest struct {
	Semester       string   `json:"semester" validate:"required,max=64"`
	Year           int      `json:"year" validate:"required,min=2000,max=2100"`
	PlannedCourses []string `json:"planned_courses" validate:"required,min=1,max=20,dive,required,max=255"`
	TargetCredits  int      `json:"target_credits" validate:"required,min=1,max=60"`
}

// StudyPlanResponse is the serialized study plan.
type StudyPlanResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Semester       string    `json:"semester"`
	Year           int       `json:"year"`
	PlannedCourses []string  `json:"planned_courses"`
	TargetCredits  int       `json:"target_credits"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewStudyPlanResponse converts a model into a DTO. The stored JSON column is
// decoded back into the ordered course-name list.
func NewStudyPlanResponse(model models.StudyPlan) StudyPlanResponse {
	var planned []string
	if len(model.PlannedCourses) > 0 {
		_ = json.Unmarshal(model.PlannedCourses, &planned)
	}

	return StudyPlanResponse{
		ID:             model.ID,
		UserID:         model.UserID,
		Semester:       model.Semester,
		Year:           model.Year,
		PlannedCourses: planned,
		TargetCredits:  model.TargetCredits,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewStudyPlanResponseSlice converts a slice of models into DTOs.
func NewStudyPlanResponseSlice(plans []models.StudyPlan) []StudyPlanResponse {
	responses := make([]StudyPlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, NewStudyPlanResponse(plan))
	}

	return responses
}
