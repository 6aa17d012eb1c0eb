package repository

import (
	"context"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_GetBySlug(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	created := createTestGroup(t, db, "books")

	group, err := repo.GetBySlug(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, created.ID, group.ID)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.True(t, models.IsNotFound(err))
}

func TestGroupRepository_DeleteDetachesPosts(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "writer")
	group := createTestGroup(t, db, "doomed")
	posts := createTestPosts(t, db, author, group, 2)

	require.NoError(t, repo.Delete(ctx, group.ID))

	_, err := repo.GetBySlug(ctx, "doomed")
	assert.True(t, models.IsNotFound(err))

	// Posts survive with the group link cleared.
	for _, p := range posts {
		reloaded, err := postRepo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, reloaded.GroupID)
	}
}
