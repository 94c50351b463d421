package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/models"
)

// AcademicRecordRepository handles persistence for semester summaries.
type AcademicRecordRepository interface {
	Create(ctx context.Context, record *models.AcademicRecord) error
	FindByID(ctx context.Context, id uint) (models.AcademicRecord, error)
	ListAll(ctx context.Context) ([]models.AcademicRecord, error)
	ListByUser(ctx context.Context, userID uint) ([]models.AcademicRecord, error)
	Delete(ctx context.Context, id uint) error
}

type academicRecordRepository struct {
	db *gorm.DB
}

// NewAcademicRecordRepository constructs a repository backed by GORM.
func NewAcademicRecordRepository(db *gorm.DB) AcademicRecordRepository {
	return &academicRecordRepository{db: db}
}

func (r *academicRecordRepository) Create(ctx context.Context, record *models.AcademicRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *academicRecordRepository) FindByID(ctx context.Context, id uint) (models.AcademicRecord, error) {
	var record models.AcademicRecord
	if err := r.db.WithContext(ctx).Preload("Courses").First(&record, id).Error; err != nil {
		return models.AcademicRecord{}, err
	}

	return record, nil
}

func (r *academicRecordRepository) ListAll(ctx context.Context) ([]models.AcademicRecord, error) {
	var records []models.AcademicRecord
	if err := r.db.WithContext(ctx).
		Preload("Courses").
		Order("year DESC, semester DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *academicRecordRepository) ListByUser(ctx context.Context, userID uint) ([]models.AcademicRecord, error) {
	var records []models.AcademicRecord
	if err := r.db.WithContext(ctx).
		Preload("Courses").
		Where("user_id = ?", userID).
		Order("year DESC, semester DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// Delete removes the record; its courses go with it via the cascade constraint.
// Course rows are removed explicitly as well so sqlite test databases without
// foreign-key enforcement behave like postgres.
func (r *academicRecordRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("academic_record_id = ?", id).Delete(&models.Course{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&models.AcademicRecord{}, id).Error
}
