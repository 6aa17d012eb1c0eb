package server

import (
	"plume/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// FollowAuthor subscribes the authenticated user to the author's posts and
// redirects to the author's profile. Self-follows and repeat follows are
// silent no-ops.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := s.followService.Follow(c.Context(), currentUserID(c), username); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "follow created",
		"author", username)

	return c.Redirect("/"+username, fiber.StatusFound)
}

// UnfollowAuthor removes the subscription and redirects to the author's
// profile. Removing an absent subscription is a silent no-op.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := s.followService.Unfollow(c.Context(), currentUserID(c), username); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect("/"+username, fiber.StatusFound)
}
