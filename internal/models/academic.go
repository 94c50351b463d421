package models

import "time"

// Course status values mirror what students report per subject.
const (
	CourseStatusPassed     = "Passed"
	CourseStatusFailed     = "Failed"
	CourseStatusInProgress = "In Progress"
	CourseStatusPlanned    = "Planned"
)

// AcademicRecord summarises one semester of a student's academic standing.
type AcademicRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Semester     string    `gorm:"size:64;not null" json:"semester"`
	Year         int       `gorm:"not null" json:"year"`
	GPA          *float64  `json:"gpa"`
	TotalCredits *int      `json:"total_credits"`
	IsCompleted  bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Courses      []Course  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"courses,omitempty"`
}

// Course is one subject inside an academic record.
type Course struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	AcademicRecordID uint      `gorm:"not null;index" json:"academic_record_id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Credits          int       `gorm:"not null" json:"credits"`
	Grade            *string   `gorm:"size:8" json:"grade"`
	Status           string    `gorm:"size:32;not null;default:'In Progress'" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ValidCourseStatus reports whether the value is one of the accepted course states.
func ValidCourseStatus(status string) bool {
	switch status {
	case CourseStatusPassed, CourseStatusFailed, CourseStatusInProgress, CourseStatusPlanned:
		return true
	default:
		return false
	}
}
