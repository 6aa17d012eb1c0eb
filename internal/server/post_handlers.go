package server

import (
	"fmt"

	"plume/internal/middleware"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postInputFromForm reads the multipart post form. A missing image part is
// not an error; the field is simply optional.
func postInputFromForm(c *fiber.Ctx) service.PostInput {
	in := service.PostInput{
		Text:      c.FormValue("text"),
		GroupSlug: c.FormValue("group"),
	}
	if fh, err := c.FormFile("image"); err == nil {
		in.Image = fh
	}
	return in
}

// NewPostForm returns the data the post creation form needs: the list of
// groups the author can attach the post to.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"groups": groups,
	})
}

// CreatePost persists a new post for the authenticated author and redirects
// to the global feed. Validation failures answer 422 with per-field messages
// so the form can re-render.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	// The global feed cache is not invalidated here: a new post becomes
	// visible once the cache interval elapses.
	post, err := s.postService.Create(c.Context(), userID, postInputFromForm(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "post created",
		"post_id", post.ID, "author_id", userID)

	return c.Redirect("/", fiber.StatusFound)
}

// PostView returns a single post, located by author username and post ID,
// along with its comments.
func (s *Server) PostView(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByAuthorAndID(c.Context(), c.Params("username"), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ForPost(c.Context(), post.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// EditPostForm returns the post for the edit form. Anyone other than the
// author gets a 404, same as a missing post.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetForEdit(
		c.Context(), c.Params("username"), postID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":   post,
		"groups": groups,
	})
}

// UpdatePost applies the edit form to the author's post and redirects to the
// post view. The creation timestamp is never changed.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	username := c.Params("username")
	post, err := s.postService.Edit(
		c.Context(), username, postID, currentUserID(c), postInputFromForm(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/%s/%d", username, post.ID), fiber.StatusFound)
}
