package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/repository"
	"github.com/studifund/studifund-api/internal/service"
)

func TestAuthServiceLogin(t *testing.T) {
	db := setupServiceDB(t, "auth_login", &models.User{})
	users := repository.NewUserRepository(db)
	svc := service.NewAuthService(users, newValidator(), testLogger())

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		Username:   "hana",
		Email:      "hana@example.com",
		Password:   string(hash),
		FullName:   "Hana",
		NationalID: "NID-hana",
		ProgramID:  "PRG-hana",
		Role:       models.RoleStudent,
	}
	require.NoError(t, users.Create(context.Background(), &user))

	logged, err := svc.Login(context.Background(), dto.LoginRequest{Username: "hana", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "hana", Password: "wrongpass"})
	require.True(t, errors.Is(err, service.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "secret123"})
	require.True(t, errors.Is(err, service.ErrInvalidCredentials))
}

func TestAuthServiceCurrentUser(t *testing.T) {
	db := setupServiceDB(t, "auth_current", &models.User{})
	users := repository.NewUserRepository(db)
	svc := service.NewAuthService(users, newValidator(), testLogger())

	user := seedUser(t, users, "fia", models.RoleStudent)

	current, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, current.Username)

	_, err = svc.CurrentUser(context.Background(), 9999)
	require.True(t, errors.Is(err, service.ErrUserNotFound))
}
