package server

import (
	"fmt"

	"plume/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// AddComment attaches a comment to the post located by author username and
// post ID, then redirects back to the post view.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	username := c.Params("username")
	comment, err := s.commentService.Add(
		c.Context(), username, postID, currentUserID(c), c.FormValue("text"))
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "comment added",
		"comment_id", comment.ID, "post_id", postID)

	return c.Redirect(fmt.Sprintf("/%s/%d", username, postID), fiber.StatusFound)
}

// CommentRedirect sends GET requests on the comment endpoint to the global
// feed; comments are created via POST only.
func (s *Server) CommentRedirect(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusFound)
}
