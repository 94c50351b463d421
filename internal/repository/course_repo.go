package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/models"
)

// CourseRepository handles persistence for subjects inside academic records.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id uint) (models.Course, error)
	ListByRecord(ctx context.Context, recordID uint) ([]models.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a repository backed by GORM.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}

	return course, nil
}

func (r *courseRepository) ListByRecord(ctx context.Context, recordID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).
		Where("academic_record_id = ?", recordID).
		Order("created_at ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}
