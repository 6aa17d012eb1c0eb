package server

import (
	"github.com/gofiber/fiber/v2"
)

// Index returns the global feed, newest first. Sits behind the page cache,
// so repeated hits within the cache window replay the stored body.
func (s *Server) Index(c *fiber.Ctx) error {
	page, err := s.feedService.Global(c.Context(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}

// GroupFeed returns a group's page of posts along with the group itself.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.Group(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(feed)
}

// FollowingFeed returns the page of posts from authors the viewer follows.
func (s *Server) FollowingFeed(c *fiber.Ctx) error {
	page, err := s.feedService.Following(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}
