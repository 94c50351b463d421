package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/observability"
	"github.com/studifund/studifund-api/internal/repository"
)

var (
	// ErrClaimNotFound indicates the requested claim does not exist.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrNotClaimOwner indicates a non-admin tried to access someone else's claim.
	ErrNotClaimOwner = errors.New("cannot access another user's claim")
	// ErrInvalidStatusTarget indicates a review decision outside {approved, rejected}.
	ErrInvalidStatusTarget = errors.New("status must be approved or rejected")
)

const summaryCacheKey = "claims:summary"

// ClaimService owns the claim lifecycle: submission, listing with ownership
// rules, and the pending -> approved/rejected review transition.
type ClaimService interface {
	Submit(ctx context.Context, actor Actor, req dto.ClaimCreateRequest) (dto.ClaimResponse, error)
	List(ctx context.Context, actor Actor) ([]dto.ClaimResponse, error)
	Get(ctx context.Context, actor Actor, id uint) (dto.ClaimResponse, error)
	Review(ctx context.Context, reviewer Actor, id uint, req dto.ClaimStatusUpdateRequest) (dto.ClaimResponse, error)
	Summary(ctx context.Context) (dto.ClaimSummaryResponse, error)
}

type claimService struct {
	claims        repository.ClaimRepository
	users         repository.UserRepository
	notifications NotificationService
	mailer        Mailer
	cache         *redis.Client
	cacheTTL      time.Duration
	validator     *validator.Validate
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
	tracer        trace.Tracer
}

// NewClaimService constructs a claim service. The redis client may be nil, in
// which case the summary is computed on every request.
func NewClaimService(
	claims repository.ClaimRepository,
	users repository.UserRepository,
	notifications NotificationService,
	mailer Mailer,
	cache *redis.Client,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger zerolog.Logger,
) ClaimService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &claimService{
		claims:        claims,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		cache:         cache,
		cacheTTL:      cacheTTL,
		validator:     validate,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        logger.With().Str("component", "claim_service").Logger(),
		tracer:        otel.Tracer("github.com/studifund/studifund-api/internal/service/claim"),
	}
}

// Submit persists a new claim. The status is always pending regardless of any
// client-supplied value, and bank details are copied from the owner's profile
// at submission time.
func (s *claimService) Submit(ctx context.Context, actor Actor, req dto.ClaimCreateRequest) (dto.ClaimResponse, error) {
	ctx, span := s.tracer.Start(ctx, "claims.submit", trace.WithAttributes(
		attribute.Int("claim.user_id", int(actor.ID)),
		attribute.String("claim.type", req.ClaimType),
	))
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.ClaimResponse{}, err
	}

	owner, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClaimResponse{}, ErrUserNotFound
		}
		span.RecordError(err)
		return dto.ClaimResponse{}, err
	}

	claim := models.Claim{
		UserID:            actor.ID,
		ClaimType:         strings.TrimSpace(req.ClaimType),
		Amount:            req.Amount,
		Period:            strings.TrimSpace(req.Period),
		Description:       strings.TrimSpace(s.sanitizer.Sanitize(req.Description)),
		ReceiptFile:       strings.TrimSpace(req.ReceiptFile),
		SupportingFile:    strings.TrimSpace(req.SupportingFile),
		BankName:          owner.BankName,
		BankAccountNumber: owner.BankAccountNumber,
		Status:            models.ClaimStatusPending,
	}

	if err := s.claims.Create(ctx, &claim); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.ClaimResponse{}, err
	}

	s.invalidateSummary(ctx)
	observability.ClaimsSubmitted().WithLabelValues(claim.ClaimType).Inc()
	span.SetStatus(codes.Ok, "submitted")

	s.notifySubmission(ctx, owner, claim)

	return dto.NewClaimResponse(claim), nil
}

func (s *claimService) List(ctx context.Context, actor Actor) ([]dto.ClaimResponse, error) {
	var (
		claims []models.Claim
		err    error
	)

	if actor.IsAdmin() {
		claims, err = s.claims.ListAll(ctx)
	} else {
		claims, err = s.claims.ListByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewClaimResponseSlice(claims), nil
}

func (s *claimService) Get(ctx context.Context, actor Actor, id uint) (dto.ClaimResponse, error) {
	claim, err := s.claims.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClaimResponse{}, ErrClaimNotFound
		}
		return dto.ClaimResponse{}, err
	}

	if !actor.IsAdmin() && claim.UserID != actor.ID {
		return dto.ClaimResponse{}, ErrNotClaimOwner
	}

	return dto.NewClaimResponse(claim), nil
}

// Review applies the administrator's decision. Status, review comment,
// reviewer and review timestamp are written in one atomic update; the
// notification and email side effects are best-effort and never fail the
// response.
func (s *claimService) Review(ctx context.Context, reviewer Actor, id uint, req dto.ClaimStatusUpdateRequest) (dto.ClaimResponse, error) {
	ctx, span := s.tracer.Start(ctx, "claims.review", trace.WithAttributes(
		attribute.Int("claim.id", int(id)),
		attribute.String("claim.target_status", req.Status),
	))
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.ClaimResponse{}, err
	}

	if !models.ValidClaimStatusTarget(req.Status) {
		return dto.ClaimResponse{}, ErrInvalidStatusTarget
	}

	claim, err := s.claims.UpdateReview(ctx, id, repository.ClaimReview{
		Status:        req.Status,
		ReviewComment: req.ReviewComment,
		ReviewerID:    reviewer.ID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClaimResponse{}, ErrClaimNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.ClaimResponse{}, err
	}

	s.invalidateSummary(ctx)
	observability.ClaimsReviewed().WithLabelValues(claim.Status).Inc()
	span.SetStatus(codes.Ok, "reviewed")

	s.notifyReview(ctx, claim)

	return dto.NewClaimResponse(claim), nil
}

// Summary aggregates claim counts and amounts, served from redis when fresh.
func (s *claimService) Summary(ctx context.Context) (dto.ClaimSummaryResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, summaryCacheKey).Result()
		if err == nil {
			var response dto.ClaimSummaryResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("claim summary cache read failed")
		}
	}

	summary, err := s.claims.Summarize(ctx)
	if err != nil {
		return dto.ClaimSummaryResponse{}, err
	}

	response := dto.ClaimSummaryResponse{
		TotalClaims:    summary.TotalClaims,
		Pending:        summary.Pending,
		Approved:       summary.Approved,
		Rejected:       summary.Rejected,
		TotalAmount:    summary.TotalAmount,
		ApprovedAmount: summary.ApprovedAmount,
		GeneratedAt:    time.Now().UTC(),
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("claim summary cache write failed")
			}
		}
	}

	return response, nil
}

func (s *claimService) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("claim summary cache invalidation failed")
	}
}

func (s *claimService) notifySubmission(ctx context.Context, owner models.User, claim models.Claim) {
	message := fmt.Sprintf("Your %s claim for %s (%.2f) was received and is pending review.", claim.ClaimType, claim.Period, claim.Amount)
	s.publishNotification(ctx, owner.ID, "Claim Received", message)

	admins, err := s.users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to resolve admin accounts for submission notice")
		return
	}

	adminMessage := fmt.Sprintf("%s submitted a %s claim for %s (%.2f).", owner.FullName, claim.ClaimType, claim.Period, claim.Amount)
	for _, admin := range admins {
		s.publishNotification(ctx, admin.ID, "New Claim Submitted", adminMessage)
	}
}

func (s *claimService) notifyReview(ctx context.Context, claim models.Claim) {
	title := "Claim Approved"
	if claim.Status == models.ClaimStatusRejected {
		title = "Claim Rejected"
	}

	message := fmt.Sprintf("Your %s claim for %s has been %s.", claim.ClaimType, claim.Period, claim.Status)
	if claim.ReviewComment != nil && *claim.ReviewComment != "" {
		message = fmt.Sprintf("%s Reviewer comment: %s", message, *claim.ReviewComment)
	}

	s.publishNotification(ctx, claim.UserID, title, message)

	owner, err := s.users.FindByID(ctx, claim.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("claim_id", claim.ID).Msg("failed to resolve claim owner for review email")
		return
	}

	if err := s.mailer.Send(ctx, owner.Email, title, message); err != nil {
		s.logger.Warn().Err(err).Uint("claim_id", claim.ID).Msg("review email delivery failed")
	}
}

func (s *claimService) publishNotification(ctx context.Context, userID uint, title, message string) {
	_, err := s.notifications.Publish(ctx, dto.NotificationCreateRequest{
		UserID:  userID,
		Title:   title,
		Message: message,
	})
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Str("title", title).Msg("notification side effect failed")
	}
}
