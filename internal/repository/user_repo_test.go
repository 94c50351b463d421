package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studifund/studifund-api/internal/models"
)

func newTestUser(username, email, nationalID, programID, role string) models.User {
	return models.User{
		Username:   username,
		Email:      email,
		Password:   "hashed",
		FullName:   "Test User",
		NationalID: nationalID,
		ProgramID:  programID,
		Role:       role,
	}
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := setupTestDB(t, "user_create", &models.User{})
	repo := NewUserRepository(db)

	user := newTestUser("dina", "dina@example.com", "NID-1", "PRG-1", models.RoleStudent)
	require.NoError(t, repo.Create(context.Background(), &user))
	require.NotZero(t, user.ID)

	byID, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "dina", byID.Username)

	byName, err := repo.FindByUsername(context.Background(), "dina")
	require.NoError(t, err)
	require.Equal(t, user.ID, byName.ID)
}

func TestUserRepositoryCountConflicts(t *testing.T) {
	db := setupTestDB(t, "user_conflicts", &models.User{})
	repo := NewUserRepository(db)

	existing := newTestUser("amir", "amir@example.com", "NID-2", "PRG-2", models.RoleStudent)
	require.NoError(t, repo.Create(context.Background(), &existing))

	count, err := repo.CountConflicts(context.Background(), "someone", "new@example.com", "NID-2", "PRG-other")
	require.NoError(t, err)
	require.Equal(t, int64(1), count, "national id collision should count")

	count, err = repo.CountConflicts(context.Background(), "free", "free@example.com", "NID-free", "PRG-free")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestUserRepositoryUpdatePartial(t *testing.T) {
	db := setupTestDB(t, "user_update", &models.User{})
	repo := NewUserRepository(db)

	user := newTestUser("sari", "sari@example.com", "NID-3", "PRG-3", models.RoleStudent)
	user.BankName = "Old Bank"
	require.NoError(t, repo.Create(context.Background(), &user))

	updated, err := repo.Update(context.Background(), user.ID, map[string]interface{}{
		"bank_name": "New Bank",
		"phone":     "0812",
	})
	require.NoError(t, err)
	require.Equal(t, "New Bank", updated.BankName)
	require.Equal(t, "0812", updated.Phone)
	require.Equal(t, "sari", updated.Username, "untouched fields survive")
}

func TestUserRepositoryListByRole(t *testing.T) {
	db := setupTestDB(t, "user_roles", &models.User{})
	repo := NewUserRepository(db)

	student := newTestUser("stud", "stud@example.com", "NID-4", "PRG-4", models.RoleStudent)
	admin := newTestUser("boss", "boss@example.com", "NID-5", "PRG-5", models.RoleAdmin)
	require.NoError(t, repo.Create(context.Background(), &student))
	require.NoError(t, repo.Create(context.Background(), &admin))

	admins, err := repo.ListByRole(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, "boss", admins[0].Username)
}
