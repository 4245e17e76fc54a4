package server

import (
	"linguaspace/internal/auth"
	"linguaspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, "index", fiber.Map{"Posts": posts})
}

// ShowPost handles GET /post/:id
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			return s.renderNotFound(c)
		}
		return err
	}
	return s.render(c, "post", fiber.Map{"Post": post})
}

// ShowNewPost handles GET /new
func (s *Server) ShowNewPost(c *fiber.Ctx) error {
	return s.render(c, "new", nil)
}

// CreatePost handles POST /new
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if !auth.CanCreatePost(user) {
		// RequireAuth gates this route; the check here guarantees the store
		// is never reached by an unauthenticated request.
		return s.redirectWithFlash(c, "/login", flashWarning, "Please log in to write a new post.")
	}

	title := c.FormValue("title")
	content := c.FormValue("content")

	if _, err := s.postService.CreatePost(c.Context(), title, content, user.ID); err != nil {
		if models.ErrorCode(err) == models.CodeValidation {
			return s.redirectWithFlash(c, "/new", flashDanger, err.Error())
		}
		return err
	}

	return s.redirectWithFlash(c, "/", flashSuccess, "Your post has been published successfully.")
}
