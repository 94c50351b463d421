package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/studifund/studifund-api/internal/models"
)

func TestStudyPlanRepositoryRoundTripsPlannedCourses(t *testing.T) {
	db := setupTestDB(t, "plan_roundtrip", &models.User{}, &models.StudyPlan{})
	repo := NewStudyPlanRepository(db)

	planned, err := json.Marshal([]string{"Algorithms", "Databases", "Statistics"})
	require.NoError(t, err)

	plan := models.StudyPlan{
		UserID:         1,
		Semester:       "Fall",
		Year:           2026,
		PlannedCourses: datatypes.JSON(planned),
		TargetCredits:  18,
	}
	require.NoError(t, repo.Create(context.Background(), &plan))

	found, err := repo.FindByID(context.Background(), plan.ID)
	require.NoError(t, err)

	var courses []string
	require.NoError(t, json.Unmarshal(found.PlannedCourses, &courses))
	require.Equal(t, []string{"Algorithms", "Databases", "Statistics"}, courses, "client ordering preserved")
}

func TestStudyPlanRepositoryListByUser(t *testing.T) {
	db := setupTestDB(t, "plan_list", &models.User{}, &models.StudyPlan{})
	repo := NewStudyPlanRepository(db)

	mine := models.StudyPlan{UserID: 1, Semester: "Fall", Year: 2026, TargetCredits: 12}
	other := models.StudyPlan{UserID: 2, Semester: "Fall", Year: 2026, TargetCredits: 15}
	require.NoError(t, repo.Create(context.Background(), &mine))
	require.NoError(t, repo.Create(context.Background(), &other))

	listed, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, 12, listed[0].TargetCredits)
}
