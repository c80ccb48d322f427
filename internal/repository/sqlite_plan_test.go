package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGetByID_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan(testutil.WithMaterials(
		domain.Material{Name: "Manuale", Kind: domain.MaterialBook},
		domain.Material{Name: "Appello 2024", Kind: domain.MaterialPastExam},
	))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan, fetched)
}

func TestPlanRepo_RoundTripKeepsCompletion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	day := plan.Days[0]
	doneAt := testutil.TestNow.Add(90 * time.Minute)
	for _, task := range day.Tasks {
		require.NoError(t, plan.ToggleTask(day.ID, task.ID, doneAt))
	}
	require.NoError(t, plan.ToggleTask(plan.Days[1].ID, plan.Days[1].Tasks[0].ID, doneAt))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan, fetched)
	assert.True(t, fetched.Days[0].Completed)
	require.NotNil(t, fetched.Days[0].CompletedAt)
	assert.True(t, doneAt.Equal(*fetched.Days[0].CompletedAt))
	assert.Equal(t, 10, fetched.OverallProgress)
}

func TestPlanRepo_Create_Duplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, repo.Create(ctx, plan))

	err := repo.Create(ctx, plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_List_OrderedByExamDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	later := testutil.NewTestPlan(testutil.WithExamInDays(30))
	sooner := testutil.NewTestPlan(testutil.WithExamInDays(7))
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, sooner))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, sooner.ID, plans[0].ID)
	assert.Equal(t, 7, plans[0].TotalDays)
	assert.Equal(t, later.ID, plans[1].ID)
	assert.Equal(t, later.ExamDate, plans[1].ExamDate)
}

func TestPlanRepo_List_Empty(t *testing.T) {
	db := testutil.NewTestDB(t)
	plans, err := NewSQLitePlanRepo(db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanRepo_SaveDayProgress(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan(testutil.WithExamInDays(1))
	require.NoError(t, repo.Create(ctx, plan))

	day := plan.Days[0]
	require.NoError(t, plan.ToggleTask(day.ID, day.Tasks[0].ID, testutil.TestNow))
	require.NoError(t, repo.SaveDayProgress(ctx, plan, day.ID))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, fetched.OverallProgress)
	assert.True(t, fetched.Days[0].Completed)
	assert.True(t, fetched.Days[0].Tasks[0].Completed)
	assert.Equal(t, plan, fetched)

	// untoggle clears the completion timestamp
	require.NoError(t, plan.ToggleTask(day.ID, day.Tasks[0].ID, testutil.TestNow))
	require.NoError(t, repo.SaveDayProgress(ctx, plan, day.ID))

	fetched, err = repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Days[0].Completed)
	assert.Nil(t, fetched.Days[0].CompletedAt)
	assert.Equal(t, 0, fetched.OverallProgress)
}

func TestPlanRepo_SaveDayProgress_UnknownPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)

	plan := testutil.NewTestPlan()
	err := repo.SaveDayProgress(context.Background(), plan, plan.Days[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.SaveDayProgress(context.Background(), plan, "missing-day")
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
}

func TestPlanRepo_Delete_Cascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.Delete(ctx, plan.ID))

	_, err := repo.GetByID(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var days, tasks int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan_days`).Scan(&days))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan_tasks`).Scan(&tasks))
	assert.Zero(t, days)
	assert.Zero(t, tasks)

	assert.ErrorIs(t, repo.Delete(ctx, plan.ID), ErrNotFound)
}
