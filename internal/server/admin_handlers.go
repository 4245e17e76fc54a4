package server

import (
	"linguaspace/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /admin. Anonymous visitors are sent to the
// login page; authenticated non-admins are sent home with a distinct
// message.
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.redirectWithFlash(c, "/login", flashDanger, "You must log in to access the admin dashboard.")
	}
	if !auth.CanViewAdmin(user, s.config.AdminEmail) {
		return s.redirectWithFlash(c, "/", flashDanger, "You are not authorized to access this page.")
	}

	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return err
	}

	return s.render(c, "admin", fiber.Map{
		"Users": users,
		"Posts": posts,
	})
}
