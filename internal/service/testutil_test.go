package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/repository"
	"github.com/studifund/studifund-api/internal/service"
)

func setupServiceDB(t *testing.T, name string, entities ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func seedUser(t *testing.T, users repository.UserRepository, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username:          username,
		Email:             username + "@example.com",
		Password:          "hashed",
		FullName:          "User " + username,
		NationalID:        "NID-" + username,
		ProgramID:         "PRG-" + username,
		BankName:          "Campus Bank",
		BankAccountNumber: "1234567890",
		BankAccountHolder: "User " + username,
		Role:              role,
	}
	require.NoError(t, users.Create(context.Background(), &user))
	return user
}

// notificationRecorder satisfies service.NotificationService and captures
// published payloads for assertions.
type notificationRecorder struct {
	mu        sync.Mutex
	published []dto.NotificationCreateRequest
}

func (r *notificationRecorder) Publish(_ context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, payload)
	return dto.NotificationResponse{UserID: payload.UserID, Title: payload.Title, Message: payload.Message}, nil
}

func (r *notificationRecorder) List(context.Context, uint, int, int) ([]dto.NotificationResponse, error) {
	return nil, nil
}

func (r *notificationRecorder) MarkRead(context.Context, uint, uint) (dto.NotificationResponse, error) {
	return dto.NotificationResponse{}, nil
}

func (r *notificationRecorder) Subscribe(uint) (<-chan dto.NotificationResponse, func()) {
	ch := make(chan dto.NotificationResponse)
	return ch, func() {}
}

func (r *notificationRecorder) Start(context.Context) {}

func (r *notificationRecorder) byTitle(title string) []dto.NotificationCreateRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []dto.NotificationCreateRequest
	for _, payload := range r.published {
		if payload.Title == title {
			matched = append(matched, payload)
		}
	}
	return matched
}

type mailRecorder struct {
	mu   sync.Mutex
	sent []string
}

func (m *mailRecorder) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+": "+subject)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

var _ service.NotificationService = (*notificationRecorder)(nil)
var _ service.Mailer = (*mailRecorder)(nil)
