package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

// FollowService manages directed follow edges between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the (user, author) edge. A self-follow and a duplicate
// follow are both silent no-ops: no edge is created and no error surfaces.
// Duplicates are absorbed by the store's unique constraint rather than a
// prior existence check, so concurrent identical requests cannot race into
// two edges.
func (s *FollowService) Follow(ctx context.Context, userID uint, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	if userID == author.ID {
		return nil
	}

	return s.followRepo.Create(ctx, &models.Follow{
		UserID:   userID,
		AuthorID: author.ID,
	})
}

// Unfollow removes any matching edge; removing nothing is not an error.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, userID, author.ID)
}

// IsFollowing reports whether the edge exists.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.followRepo.Exists(ctx, userID, authorID)
}
