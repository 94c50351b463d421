package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/models"
)

// StudyPlanRepository handles persistence for study plans.
type StudyPlanRepository interface {
	Create(ctx context.Context, plan *models.StudyPlan) error
	FindByID(ctx context.Context, id uint) (models.StudyPlan, error)
	ListAll(ctx context.Context) ([]models.StudyPlan, error)
	ListByUser(ctx context.Context, userID uint) ([]models.StudyPlan, error)
}

type studyPlanRepository struct {
	db *gorm.DB
}

// NewStudyPlanRepository constructs a repository backed by GORM.
func NewStudyPlanRepository(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepository{db: db}
}

func (r *studyPlanRepository) Create(ctx context.Context, plan *models.StudyPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *studyPlanRepository) FindByID(ctx context.Context, id uint) (models.StudyPlan, error) {
	var plan models.StudyPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return models.StudyPlan{}, err
	}

	return plan, nil
}

func (r *studyPlanRepository) ListAll(ctx context.Context) ([]models.StudyPlan, error) {
	var plans []models.StudyPlan
	if err := r.db.WithContext(ctx).Order("year DESC, semester DESC").Find(&plans).Error; err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *studyPlanRepository) ListByUser(ctx context.Context, userID uint) ([]models.StudyPlan, error) {
	var plans []models.StudyPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC, semester DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}

	return plans, nil
}
