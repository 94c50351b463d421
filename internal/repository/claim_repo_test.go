package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studifund/studifund-api/internal/models"
)

func newTestClaim(userID uint, claimType string, amount float64, status string) models.Claim {
	return models.Claim{
		UserID:      userID,
		ClaimType:   claimType,
		Amount:      amount,
		Period:      "2026-08",
		ReceiptFile: "/uploads/receipt.pdf",
		Status:      status,
	}
}

func TestClaimRepositoryListByUser(t *testing.T) {
	db := setupTestDB(t, "claim_list", &models.User{}, &models.Claim{})
	repo := NewClaimRepository(db)

	mine := newTestClaim(1, "books", 120, models.ClaimStatusPending)
	other := newTestClaim(2, "transport", 40, models.ClaimStatusPending)
	require.NoError(t, repo.Create(context.Background(), &mine))
	require.NoError(t, repo.Create(context.Background(), &other))

	claims, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	require.Equal(t, "books", claims[0].ClaimType)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestClaimRepositoryUpdateReview(t *testing.T) {
	db := setupTestDB(t, "claim_review", &models.User{}, &models.Claim{})
	repo := NewClaimRepository(db)

	claim := newTestClaim(1, "tuition", 900, models.ClaimStatusPending)
	require.NoError(t, repo.Create(context.Background(), &claim))

	comment := "receipt verified"
	reviewed, err := repo.UpdateReview(context.Background(), claim.ID, ClaimReview{
		Status:        models.ClaimStatusApproved,
		ReviewComment: &comment,
		ReviewerID:    7,
	})
	require.NoError(t, err)
	require.Equal(t, models.ClaimStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewComment)
	require.Equal(t, comment, *reviewed.ReviewComment)
	require.NotNil(t, reviewed.ReviewedBy)
	require.Equal(t, uint(7), *reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)
	require.True(t, reviewed.IsReviewed())
	require.Equal(t, float64(900), reviewed.Amount, "review must not touch claim content")
}

func TestClaimRepositoryUpdateReviewOverwritesPriorDecision(t *testing.T) {
	db := setupTestDB(t, "claim_rereview", &models.User{}, &models.Claim{})
	repo := NewClaimRepository(db)

	claim := newTestClaim(1, "housing", 500, models.ClaimStatusPending)
	require.NoError(t, repo.Create(context.Background(), &claim))

	_, err := repo.UpdateReview(context.Background(), claim.ID, ClaimReview{Status: models.ClaimStatusApproved, ReviewerID: 2})
	require.NoError(t, err)

	second, err := repo.UpdateReview(context.Background(), claim.ID, ClaimReview{Status: models.ClaimStatusRejected, ReviewerID: 3})
	require.NoError(t, err)
	require.Equal(t, models.ClaimStatusRejected, second.Status)
	require.Equal(t, uint(3), *second.ReviewedBy)
}

func TestClaimRepositorySummarize(t *testing.T) {
	db := setupTestDB(t, "claim_summary", &models.User{}, &models.Claim{})
	repo := NewClaimRepository(db)

	pending := newTestClaim(1, "books", 100, models.ClaimStatusPending)
	approved := newTestClaim(1, "transport", 250, models.ClaimStatusApproved)
	approvedToo := newTestClaim(2, "tuition", 50, models.ClaimStatusApproved)
	rejected := newTestClaim(2, "misc", 75, models.ClaimStatusRejected)
	for _, c := range []*models.Claim{&pending, &approved, &approvedToo, &rejected} {
		require.NoError(t, repo.Create(context.Background(), c))
	}

	summary, err := repo.Summarize(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), summary.TotalClaims)
	require.Equal(t, int64(1), summary.Pending)
	require.Equal(t, int64(2), summary.Approved)
	require.Equal(t, int64(1), summary.Rejected)
	require.InDelta(t, 475, summary.TotalAmount, 0.001)
	require.InDelta(t, 300, summary.ApprovedAmount, 0.001)
}
