package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/repository"
	"github.com/studifund/studifund-api/internal/service"
)

func newClaimFixture(t *testing.T, name string, cache *redis.Client) (service.ClaimService, repository.UserRepository, repository.ClaimRepository, *notificationRecorder, *mailRecorder) {
	t.Helper()
	db := setupServiceDB(t, name, &models.User{}, &models.Claim{})
	users := repository.NewUserRepository(db)
	claims := repository.NewClaimRepository(db)
	notifications := &notificationRecorder{}
	mailer := &mailRecorder{}
	svc := service.NewClaimService(claims, users, notifications, mailer, cache, time.Minute, newValidator(), testLogger())
	return svc, users, claims, notifications, mailer
}

func TestClaimServiceSubmitForcesPendingAndCopiesBankDetails(t *testing.T) {
	svc, users, _, notifications, _ := newClaimFixture(t, "claim_submit", nil)
	owner := seedUser(t, users, "maya", models.RoleStudent)
	admin := seedUser(t, users, "chief", models.RoleAdmin)

	claim, err := svc.Submit(context.Background(), service.Actor{ID: owner.ID, Role: owner.Role}, dto.ClaimCreateRequest{
		ClaimType:   "books",
		Amount:      150.50,
		Period:      "2026-08",
		Description: "Textbooks <script>alert(1)</script>for the fall term",
		ReceiptFile: "/uploads/receipt.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, models.ClaimStatusPending, claim.Status)
	require.Equal(t, owner.BankName, claim.BankName)
	require.Equal(t, owner.BankAccountNumber, claim.BankAccountNumber)
	require.NotContains(t, claim.Description, "<script>")
	require.Contains(t, claim.Description, "Textbooks")

	received := notifications.byTitle("Claim Received")
	require.Len(t, received, 1)
	require.Equal(t, owner.ID, received[0].UserID)

	adminNotices := notifications.byTitle("New Claim Submitted")
	require.Len(t, adminNotices, 1)
	require.Equal(t, admin.ID, adminNotices[0].UserID)
}

func TestClaimServiceSubmitRejectsInvalidPayload(t *testing.T) {
	svc, users, _, _, _ := newClaimFixture(t, "claim_invalid", nil)
	owner := seedUser(t, users, "toni", models.RoleStudent)

	_, err := svc.Submit(context.Background(), service.Actor{ID: owner.ID, Role: owner.Role}, dto.ClaimCreateRequest{
		ClaimType: "books",
		Amount:    -5,
		Period:    "2026-08",
	})
	require.Error(t, err)
}

func TestClaimServiceGetEnforcesOwnership(t *testing.T) {
	svc, users, claims, _, _ := newClaimFixture(t, "claim_ownership", nil)
	owner := seedUser(t, users, "lena", models.RoleStudent)
	intruder := seedUser(t, users, "karl", models.RoleStudent)
	admin := seedUser(t, users, "root", models.RoleAdmin)

	claim := models.Claim{UserID: owner.ID, ClaimType: "transport", Amount: 40, Period: "2026-08", ReceiptFile: "/uploads/r.pdf", Status: models.ClaimStatusPending}
	require.NoError(t, claims.Create(context.Background(), &claim))

	_, err := svc.Get(context.Background(), service.Actor{ID: intruder.ID, Role: intruder.Role}, claim.ID)
	require.True(t, errors.Is(err, service.ErrNotClaimOwner))

	got, err := svc.Get(context.Background(), service.Actor{ID: admin.ID, Role: admin.Role}, claim.ID)
	require.NoError(t, err)
	require.Equal(t, claim.ID, got.ID)

	_, err = svc.Get(context.Background(), service.Actor{ID: owner.ID, Role: owner.Role}, 9999)
	require.True(t, errors.Is(err, service.ErrClaimNotFound))
}

func TestClaimServiceReviewNotifiesAndEmailsOwner(t *testing.T) {
	svc, users, claims, notifications, mailer := newClaimFixture(t, "claim_decision", nil)
	owner := seedUser(t, users, "rika", models.RoleStudent)
	admin := seedUser(t, users, "dean", models.RoleAdmin)

	claim := models.Claim{UserID: owner.ID, ClaimType: "tuition", Amount: 900, Period: "2026-08", ReceiptFile: "/uploads/r.pdf", Status: models.ClaimStatusPending}
	require.NoError(t, claims.Create(context.Background(), &claim))

	comment := "receipt checks out"
	reviewed, err := svc.Review(context.Background(), service.Actor{ID: admin.ID, Role: admin.Role}, claim.ID, dto.ClaimStatusUpdateRequest{
		Status:        models.ClaimStatusApproved,
		ReviewComment: &comment,
	})
	require.NoError(t, err)
	require.Equal(t, models.ClaimStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	require.Equal(t, admin.ID, *reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)

	approvals := notifications.byTitle("Claim Approved")
	require.Len(t, approvals, 1)
	require.Equal(t, owner.ID, approvals[0].UserID)
	require.Contains(t, approvals[0].Message, comment)

	require.Len(t, mailer.sent, 1)
	require.Contains(t, mailer.sent[0], owner.Email)
}

func TestClaimServiceReviewRejectsBadStatus(t *testing.T) {
	svc, users, claims, _, _ := newClaimFixture(t, "claim_badstatus", nil)
	owner := seedUser(t, users, "ivo", models.RoleStudent)
	admin := seedUser(t, users, "prof", models.RoleAdmin)

	claim := models.Claim{UserID: owner.ID, ClaimType: "misc", Amount: 20, Period: "2026-08", ReceiptFile: "/uploads/r.pdf", Status: models.ClaimStatusPending}
	require.NoError(t, claims.Create(context.Background(), &claim))

	_, err := svc.Review(context.Background(), service.Actor{ID: admin.ID, Role: admin.Role}, claim.ID, dto.ClaimStatusUpdateRequest{
		Status: models.ClaimStatusPending,
	})
	require.Error(t, err, "a claim can never be moved back to pending")
}

func TestClaimServiceSummaryUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc, users, claims, _, _ := newClaimFixture(t, "claim_summarycache", cache)
	owner := seedUser(t, users, "nur", models.RoleStudent)

	claim := models.Claim{UserID: owner.ID, ClaimType: "books", Amount: 100, Period: "2026-08", ReceiptFile: "/uploads/r.pdf", Status: models.ClaimStatusApproved}
	require.NoError(t, claims.Create(context.Background(), &claim))

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, int64(1), first.TotalClaims)

	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.TotalClaims, second.TotalClaims)

	_, err = svc.Submit(context.Background(), service.Actor{ID: owner.ID, Role: owner.Role}, dto.ClaimCreateRequest{
		ClaimType:   "transport",
		Amount:      30,
		Period:      "2026-09",
		ReceiptFile: "/uploads/bus.pdf",
	})
	require.NoError(t, err)

	third, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.False(t, third.CacheHit, "submission invalidates the cached summary")
	require.Equal(t, int64(2), third.TotalClaims)
}

func TestClaimServiceListScopesByRole(t *testing.T) {
	svc, users, claims, _, _ := newClaimFixture(t, "claim_scope", nil)
	student := seedUser(t, users, "oda", models.RoleStudent)
	peer := seedUser(t, users, "pim", models.RoleStudent)
	admin := seedUser(t, users, "head", models.RoleAdmin)

	mine := models.Claim{UserID: student.ID, ClaimType: "books", Amount: 10, Period: "2026-08", ReceiptFile: "/uploads/a.pdf", Status: models.ClaimStatusPending}
	theirs := models.Claim{UserID: peer.ID, ClaimType: "misc", Amount: 20, Period: "2026-08", ReceiptFile: "/uploads/b.pdf", Status: models.ClaimStatusPending}
	require.NoError(t, claims.Create(context.Background(), &mine))
	require.NoError(t, claims.Create(context.Background(), &theirs))

	own, err := svc.List(context.Background(), service.Actor{ID: student.ID, Role: student.Role})
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, student.ID, own[0].UserID)

	all, err := svc.List(context.Background(), service.Actor{ID: admin.ID, Role: admin.Role})
	require.NoError(t, err)
	require.Len(t, all, 2)
}
