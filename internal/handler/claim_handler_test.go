package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/handler"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/service"
)

type mockClaimService struct {
	submitResponse  dto.ClaimResponse
	submitErr       error
	getResponse     dto.ClaimResponse
	getErr          error
	reviewResponse  dto.ClaimResponse
	reviewErr       error
	summaryResponse dto.ClaimSummaryResponse
	lastActor       service.Actor
	lastReviewID    uint
}

func (m *mockClaimService) Submit(_ context.Context, actor service.Actor, _ dto.ClaimCreateRequest) (dto.ClaimResponse, error) {
	m.lastActor = actor
	return m.submitResponse, m.submitErr
}

func (m *mockClaimService) List(_ context.Context, actor service.Actor) ([]dto.ClaimResponse, error) {
	m.lastActor = actor
	return []dto.ClaimResponse{m.getResponse}, nil
}

func (m *mockClaimService) Get(_ context.Context, actor service.Actor, _ uint) (dto.ClaimResponse, error) {
	m.lastActor = actor
	return m.getResponse, m.getErr
}

func (m *mockClaimService) Review(_ context.Context, actor service.Actor, id uint, _ dto.ClaimStatusUpdateRequest) (dto.ClaimResponse, error) {
	m.lastActor = actor
	m.lastReviewID = id
	return m.reviewResponse, m.reviewErr
}

func (m *mockClaimService) Summary(context.Context) (dto.ClaimSummaryResponse, error) {
	return m.summaryResponse, nil
}

func newClaimApp(svc service.ClaimService, userID uint, role string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/claims", injectIdentity(userID, role))
	handler.NewClaimHandler(svc, nil, zerolog.Nop()).Register(group)
	return app
}

func TestClaimHandlerSubmitCreated(t *testing.T) {
	svc := &mockClaimService{submitResponse: dto.ClaimResponse{ID: 1, UserID: 9, Status: models.ClaimStatusPending}}
	app := newClaimApp(svc, 9, models.RoleStudent)

	payload, err := json.Marshal(dto.ClaimCreateRequest{
		ClaimType:   "books",
		Amount:      120,
		Period:      "2026-08",
		ReceiptFile: "/uploads/r.pdf",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/claims", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(9), svc.lastActor.ID)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.ClaimResponse `json:"data"`
		Message string            `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "claim submitted", body.Message)
	require.Equal(t, models.ClaimStatusPending, body.Data.Status)
}

func TestClaimHandlerGetErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.ErrClaimNotFound, fiber.StatusNotFound},
		{"not owner", service.ErrNotClaimOwner, fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockClaimService{getErr: tc.err}
			app := newClaimApp(svc, 9, models.RoleStudent)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/claims/5", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestClaimHandlerGetInvalidID(t *testing.T) {
	app := newClaimApp(&mockClaimService{}, 9, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/claims/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestClaimHandlerReviewRequiresAdmin(t *testing.T) {
	svc := &mockClaimService{}
	app := newClaimApp(svc, 9, models.RoleStudent)

	payload := []byte(`{"status":"approved"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/claims/5/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Zero(t, svc.lastReviewID, "service must not be reached")
}

func TestClaimHandlerReviewAsAdmin(t *testing.T) {
	svc := &mockClaimService{reviewResponse: dto.ClaimResponse{ID: 5, Status: models.ClaimStatusApproved}}
	app := newClaimApp(svc, 1, models.RoleAdmin)

	payload := []byte(`{"status":"approved","review_comment":"ok"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/claims/5/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(5), svc.lastReviewID)
}

func TestClaimHandlerSummaryAdminOnly(t *testing.T) {
	svc := &mockClaimService{summaryResponse: dto.ClaimSummaryResponse{TotalClaims: 3, GeneratedAt: time.Now()}}

	studentApp := newClaimApp(svc, 9, models.RoleStudent)
	resp, err := studentApp.Test(httptest.NewRequest(http.MethodGet, "/api/claims/summary", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	adminApp := newClaimApp(svc, 1, models.RoleAdmin)
	resp, err = adminApp.Test(httptest.NewRequest(http.MethodGet, "/api/claims/summary", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.ClaimSummaryResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, int64(3), body.Data.TotalClaims)
}
