package repository

import (
	"context"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateIsIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "fan")
	author := createTestUser(t, db, "star")

	edge := &models.Follow{UserID: reader.ID, AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, edge))

	// Same edge again: absorbed by the unique constraint, not an error.
	require.NoError(t, repo.Create(ctx,
		&models.Follow{UserID: reader.ID, AuthorID: author.ID}))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowRepository_ExistsAndCount(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")
	c := createTestUser(t, db, "c")

	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: a.ID, AuthorID: c.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: b.ID, AuthorID: c.ID}))

	exists, err := repo.Exists(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, c.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, exists, "edges are directed")

	count, err := repo.CountFollowers(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestFollowRepository_DeleteMissingEdgeIsNoop(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "quiet")
	author := createTestUser(t, db, "loud")

	assert.NoError(t, repo.Delete(ctx, reader.ID, author.ID))

	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: reader.ID, AuthorID: author.ID}))
	require.NoError(t, repo.Delete(ctx, reader.ID, author.ID))

	exists, err := repo.Exists(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
