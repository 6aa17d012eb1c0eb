package service

import (
	"context"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
)

// CommentService implements comment creation and listing.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Add creates a comment on the post found by the (author username, id)
// compound lookup. Text must be present and within the length bound; a
// violation writes nothing.
func (s *CommentService) Add(ctx context.Context, username string, postID, authorID uint, text string) (*models.Comment, error) {
	post, err := s.postRepo.GetByAuthorAndID(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewFieldValidationError(map[string]string{"text": "text is required"})
	}
	if len(text) > models.MaxCommentLength {
		return nil, models.NewFieldValidationError(map[string]string{"text": "text exceeds 1000 characters"})
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ForPost lists the post's comments, newest first.
func (s *CommentService) ForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
