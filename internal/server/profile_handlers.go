package server

import (
	"github.com/gofiber/fiber/v2"
)

// Profile returns an author's page of posts plus the follow-state flags.
// ViewerFollows is always false for anonymous visitors.
func (s *Server) Profile(c *fiber.Ctx) error {
	feed, err := s.feedService.Profile(
		c.Context(), c.Params("username"), optionalUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(feed)
}
