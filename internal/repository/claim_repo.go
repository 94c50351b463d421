package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/models"
)

// ClaimReview captures the fields written by an administrator's decision.
type ClaimReview struct {
	Status        string
	ReviewComment *string
	ReviewerID    uint
}

// ClaimSummary aggregates per-status counts and amounts.
type ClaimSummary struct {
	TotalClaims    int64
	Pending        int64
	Approved       int64
	Rejected       int64
	TotalAmount    float64
	ApprovedAmount float64
}

// ClaimRepository handles persistence for claims.
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	FindByID(ctx context.Context, id uint) (models.Claim, error)
	ListAll(ctx context.Context) ([]models.Claim, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Claim, error)
	UpdateReview(ctx context.Context, id uint, review ClaimReview) (models.Claim, error)
	Summarize(ctx context.Context) (ClaimSummary, error)
}

type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository constructs a repository backed by GORM.
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *claimRepository) FindByID(ctx context.Context, id uint) (models.Claim, error) {
	var claim models.Claim
	if err := r.db.WithContext(ctx).First(&claim, id).Error; err != nil {
		return models.Claim{}, err
	}

	return claim, nil
}

func (r *claimRepository) ListAll(ctx context.Context) ([]models.Claim, error) {
	var claims []models.Claim
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&claims).Error; err != nil {
		return nil, err
	}

	return claims, nil
}

func (r *claimRepository) ListByUser(ctx context.Context, userID uint) ([]models.Claim, error) {
	var claims []models.Claim
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}

	return claims, nil
}

// UpdateReview writes status, review comment, reviewer and review timestamp in
// a single UPDATE. No other claim field is touched.
func (r *claimRepository) UpdateReview(ctx context.Context, id uint, review ClaimReview) (models.Claim, error) {
	var claim models.Claim
	if err := r.db.WithContext(ctx).First(&claim, id).Error; err != nil {
		return models.Claim{}, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         review.Status,
		"review_comment": review.ReviewComment,
		"reviewed_by":    review.ReviewerID,
		"reviewed_at":    now,
	}

	if err := r.db.WithContext(ctx).Model(&claim).Updates(updates).Error; err != nil {
		return models.Claim{}, err
	}

	var updated models.Claim
	if err := r.db.WithContext(ctx).First(&updated, id).Error; err != nil {
		return models.Claim{}, err
	}

	return updated, nil
}

func (r *claimRepository) Summarize(ctx context.Context) (ClaimSummary, error) {
	type statusRow struct {
		Status string
		Count  int64
		Amount float64
	}

	var rows []statusRow
	err := r.db.WithContext(ctx).
		Model(&models.Claim{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return ClaimSummary{}, err
	}

	var summary ClaimSummary
	for _, row := range rows {
		summary.TotalClaims += row.Count
		summary.TotalAmount += row.Amount

		switch row.Status {
		case models.ClaimStatusPending:
			summary.Pending = row.Count
		case models.ClaimStatusApproved:
			summary.Approved = row.Count
			summary.ApprovedAmount = row.Amount
		case models.ClaimStatusRejected:
			summary.Rejected = row.Count
		}
	}

	return summary, nil
}
