package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/ripasso/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationRepo_CreateAndGetByID_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSimulationRepo(db)
	ctx := context.Background()

	profile := testutil.NewTestProfile(
		testutil.WithWeights(30, 50, 20),
		testutil.WithArchetypes(true, true, true, true),
		testutil.WithQuestionCount(12),
	)
	sim := testutil.NewTestSimulation(profile, "Contratti", "Obbligazioni", "Successioni")
	require.NoError(t, repo.Create(ctx, sim))

	fetched, err := repo.GetByID(ctx, sim.ID)
	require.NoError(t, err)
	assert.Equal(t, sim, fetched)
}

func TestSimulationRepo_Create_Duplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSimulationRepo(db)
	ctx := context.Background()

	sim := testutil.NewTestSimulation(testutil.NewTestProfile(), "A")
	require.NoError(t, repo.Create(ctx, sim))
	assert.ErrorIs(t, repo.Create(ctx, sim), ErrAlreadyExists)
}

func TestSimulationRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSQLiteSimulationRepo(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimulationRepo_ListAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSimulationRepo(db)
	ctx := context.Background()

	sim := testutil.NewTestSimulation(testutil.NewTestProfile(testutil.WithQuestionCount(8)), "A", "B")
	require.NoError(t, repo.Create(ctx, sim))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sim.ID, list[0].ID)
	assert.Equal(t, 8, list[0].QuestionCount)
	assert.Equal(t, 30, list[0].TotalPoints)
	assert.Equal(t, "diritto-privato", list[0].ProfileName)

	require.NoError(t, repo.Delete(ctx, sim.ID))
	var questions int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM simulation_questions`).Scan(&questions))
	assert.Zero(t, questions)
	assert.ErrorIs(t, repo.Delete(ctx, sim.ID), ErrNotFound)
}
