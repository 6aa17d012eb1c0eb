package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

// FeedService composes the ordered, paginated post lists for the four
// viewing contexts: global, group, profile, and following.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GroupFeed bundles a group with its page of posts.
type GroupFeed struct {
	Group *models.Group `json:"group"`
	Page  *PostPage     `json:"page"`
}

// ProfileFeed bundles an author's page of posts with the follow-state flags
// the profile view renders.
type ProfileFeed struct {
	Profile       *models.User `json:"profile"`
	Page          *PostPage    `json:"page"`
	HasFollowers  bool         `json:"has_followers"`
	ViewerFollows bool         `json:"viewer_follows"`
}

// Global returns the page of all posts, newest first.
func (s *FeedService) Global(ctx context.Context, pageNum int) (*PostPage, error) {
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	page, offset := paginate(total, GlobalPageSize, pageNum)
	posts, err := s.postRepo.List(ctx, GlobalPageSize, offset)
	if err != nil {
		return nil, err
	}
	return newPostPage(posts, total, GlobalPageSize, page), nil
}

// Group returns the page of posts published under the slug's group.
func (s *FeedService) Group(ctx context.Context, slug string, pageNum int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	page, offset := paginate(total, GroupPageSize, pageNum)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, GroupPageSize, offset)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{
		Group: group,
		Page:  newPostPage(posts, total, GroupPageSize, page),
	}, nil
}

// Profile returns the author's page of posts plus whether the author has
// any followers at all and whether the viewer (0 for anonymous) already
// follows them.
func (s *FeedService) Profile(ctx context.Context, username string, viewerID uint, pageNum int) (*ProfileFeed, error) {
	profile, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	page, offset := paginate(total, ProfilePageSize, pageNum)
	posts, err := s.postRepo.ListByAuthor(ctx, profile.ID, ProfilePageSize, offset)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	viewerFollows := false
	if viewerID != 0 {
		viewerFollows, err = s.followRepo.Exists(ctx, viewerID, profile.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileFeed{
		Profile:       profile,
		Page:          newPostPage(posts, total, ProfilePageSize, page),
		HasFollowers:  followers > 0,
		ViewerFollows: viewerFollows,
	}, nil
}

// Following returns the page of posts by authors the viewer follows.
func (s *FeedService) Following(ctx context.Context, viewerID uint, pageNum int) (*PostPage, error) {
	total, err := s.postRepo.CountByFollowed(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	page, offset := paginate(total, FollowingPageSize, pageNum)
	posts, err := s.postRepo.ListByFollowed(ctx, viewerID, FollowingPageSize, offset)
	if err != nil {
		return nil, err
	}
	return newPostPage(posts, total, FollowingPageSize, page), nil
}
