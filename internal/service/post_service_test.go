package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create(t *testing.T) {
	t.Parallel()
	env := setupTestEnv(t)
	svc := NewPostService(env.posts, env.groups, t.TempDir())
	ctx := context.Background()

	author := env.user(t, "author")
	env.group(t, "tech")

	t.Run("Plain Text", func(t *testing.T) {
		post, err := svc.Create(ctx, author.ID, PostInput{Text: "  hello world  "})
		require.NoError(t, err)
		assert.Equal(t, "hello world", post.Text)
		assert.Nil(t, post.GroupID)
		assert.Equal(t, author.ID, post.AuthorID)
	})

	t.Run("With Group", func(t *testing.T) {
		post, err := svc.Create(ctx, author.ID, PostInput{Text: "grouped", GroupSlug: "tech"})
		require.NoError(t, err)
		require.NotNil(t, post.GroupID)
		assert.Equal(t, "tech", post.Group.Slug)
	})

	t.Run("Empty Text Rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, PostInput{Text: "   "})
		require.True(t, models.IsValidation(err))
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Fields, "text")
	})

	t.Run("Unknown Group Rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, PostInput{Text: "x", GroupSlug: "nope"})
		require.True(t, models.IsValidation(err))
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Fields, "group")
	})

	t.Run("With Image", func(t *testing.T) {
		in := PostInput{Text: "pictured", Image: fileHeader(t, "pic.png", pngHeader())}
		post, err := svc.Create(ctx, author.ID, in)
		require.NoError(t, err)
		assert.NotEmpty(t, post.ImagePath)
	})

	t.Run("Non Image Rejected And Not Saved", func(t *testing.T) {
		before, err := env.posts.CountAll(ctx)
		require.NoError(t, err)

		in := PostInput{Text: "bad file", Image: fileHeader(t, "notes.txt", []byte("just text"))}
		_, err = svc.Create(ctx, author.ID, in)
		require.True(t, models.IsValidation(err))
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Fields, "image")

		after, err := env.posts.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after, "rejected upload must write nothing")
	})
}

func TestPostService_Edit(t *testing.T) {
	t.Parallel()
	env := setupTestEnv(t)
	svc := NewPostService(env.posts, env.groups, t.TempDir())
	ctx := context.Background()

	author := env.user(t, "author")
	intruder := env.user(t, "intruder")
	posts := env.postsFor(t, author, nil, 1)
	original := posts[0].CreatedAt

	t.Run("Author Edits", func(t *testing.T) {
		updated, err := svc.Edit(ctx, "author", posts[0].ID, author.ID, PostInput{Text: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		assert.WithinDuration(t, original, updated.CreatedAt, time.Second)
	})

	t.Run("Non Author Is Forbidden", func(t *testing.T) {
		_, err := svc.Edit(ctx, "author", posts[0].ID, intruder.ID, PostInput{Text: "hijack"})
		assert.True(t, models.IsForbidden(err))
	})

	t.Run("Wrong Username Is Not Found", func(t *testing.T) {
		_, err := svc.Edit(ctx, "intruder", posts[0].ID, author.ID, PostInput{Text: "x"})
		assert.True(t, models.IsNotFound(err))
	})
}

func TestCanEdit(t *testing.T) {
	t.Parallel()
	post := &models.Post{AuthorID: 7}
	assert.True(t, CanEdit(post, 7))
	assert.False(t, CanEdit(post, 8))
	assert.False(t, CanEdit(post, 0))
}

func TestPostService_GetForEdit(t *testing.T) {
	t.Parallel()
	env := setupTestEnv(t)
	svc := NewPostService(env.posts, env.groups, t.TempDir())
	ctx := context.Background()

	author := env.user(t, "author")
	intruder := env.user(t, "intruder")
	posts := env.postsFor(t, author, nil, 1)

	post, err := svc.GetForEdit(ctx, "author", posts[0].ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, posts[0].ID, post.ID)

	_, err = svc.GetForEdit(ctx, "author", posts[0].ID, intruder.ID)
	assert.True(t, models.IsForbidden(err))
}
