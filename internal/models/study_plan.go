package models

import (
	"time"

	"gorm.io/datatypes"
)

// StudyPlan is a forward-looking declaration of courses a student intends to take.
// PlannedCourses keeps the client-supplied ordering.
type StudyPlan struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Semester       string         `gorm:"size:64;not null" json:"semester"`
	Year           int            `gorm:"not null" json:"year"`
	PlannedCourses datatypes.JSON `gorm:"type:json" json:"planned_courses"`
	TargetCredits  int            `gorm:"not null" json:"target_credits"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	User           User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
