package server

import (
	"linguaspace/internal/auth"
	"linguaspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ShowRegister handles GET /register
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return s.render(c, "register", nil)
}

// Register handles POST /register. On success the new user is logged in
// immediately.
func (s *Server) Register(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := s.userService.Register(c.Context(), email, password)
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeValidation, models.CodeDuplicateEmail:
			return s.redirectWithFlash(c, "/register", flashDanger, err.Error())
		default:
			return err
		}
	}

	// Auto-login after registration
	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return err
	}
	auth.SetCookie(c, token, s.config.IsProduction())

	return s.redirectWithFlash(c, "/", flashSuccess, "Registration successful! You are now logged in.")
}

// ShowLogin handles GET /login
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return s.render(c, "login", nil)
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := s.userService.Authenticate(c.Context(), email, password)
	if err != nil {
		switch models.ErrorCode(err) {
		// Unknown email and wrong password get the same message so the
		// login form cannot be used to enumerate accounts.
		case models.CodeNotFound, models.CodeInvalidCredentials:
			return s.redirectWithFlash(c, "/login", flashDanger, "Login failed. Check your email and password.")
		default:
			return err
		}
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return err
	}
	auth.SetCookie(c, token, s.config.IsProduction())

	return s.redirectWithFlash(c, "/", flashSuccess, "Login successful!")
}

// Logout handles GET /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	auth.ClearCookie(c)
	return s.redirectWithFlash(c, "/", flashInfo, "You have been logged out.")
}
