package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/ripasso/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	profile := testutil.NewTestProfile(
		testutil.WithWeights(20, 60, 20),
		testutil.WithArchetypes(true, false, true, false),
		testutil.WithPreferredTopics("Contratti", "Successioni"),
	)
	require.NoError(t, repo.Upsert(ctx, profile))

	got, err := repo.Get(ctx, profile.Name)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestProfileRepo_Upsert_ReplacesFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	profile := testutil.NewTestProfile(testutil.WithPreferredTopics("A"))
	require.NoError(t, repo.Upsert(ctx, profile))

	updated := testutil.NewTestProfile(testutil.WithQuestionCount(20), testutil.WithWeights(0, 100, 0))
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Get(ctx, profile.Name)
	require.NoError(t, err)
	assert.Equal(t, 20, got.AverageQuestionCount)
	assert.Equal(t, 100.0, got.WrittenWeight)
	assert.Nil(t, got.PreferredTopics)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProfileRepo_ListSortedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile(testutil.WithProfileName("storia"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile(testutil.WithProfileName("analisi"))))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "analisi", all[0].Name)
	assert.Equal(t, "storia", all[1].Name)
}

func TestProfileRepo_GetAndDelete_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "nessuno")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nessuno"), ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile()))
	require.NoError(t, repo.Delete(ctx, "diritto-privato"))
	_, err = repo.Get(ctx, "diritto-privato")
	assert.ErrorIs(t, err, ErrNotFound)
}
