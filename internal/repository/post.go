package repository

import (
	"context"
	"errors"

	"plume/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts. Every List* /
// Count* pair serves one feed context; ordering is always newest-first.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByAuthorAndID(ctx context.Context, username string, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	CountAll(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListByFollowed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	CountByFollowed(ctx context.Context, userID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// GetByAuthorAndID resolves the compound lookup used by the single-post and
// edit surfaces: the id must belong to the named author, otherwise the post
// is not found.
func (r *postRepository) GetByAuthorAndID(ctx context.Context, username string, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", id, username).
		Preload("Author").
		Preload("Group").
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// Update writes only the mutable columns; created_at is immutable after
// insert.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select("text", "group_id", "image_path").
		Updates(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, limit, offset, nil)
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, nil)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	})
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	})
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

// ListByFollowed returns posts by every author the user follows.
func (r *postRepository) ListByFollowed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id IN (SELECT author_id FROM follows WHERE user_id = ?)", userID)
	})
}

func (r *postRepository) CountByFollowed(ctx context.Context, userID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id IN (SELECT author_id FROM follows WHERE user_id = ?)", userID)
	})
}

func (r *postRepository) listWhere(ctx context.Context, limit, offset int, scope func(*gorm.DB) *gorm.DB) ([]*models.Post, error) {
	var posts []*models.Post
	db := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group")
	if scope != nil {
		db = scope(db)
	}
	if err := db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) countWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.Post{})
	if scope != nil {
		db = scope(db)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
