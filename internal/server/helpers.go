package server

import (
	"net/url"
	"strings"
	"time"

	"linguaspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// Flash categories, matching the CSS classes in the layout.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashWarning = "warning"
	flashInfo    = "info"
)

const flashCookie = "flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// currentUser returns the user resolved by LoadCurrentUser, or nil.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(currentUserKey).(*models.User); ok {
		return user
	}
	return nil
}

// setFlash stores a one-shot message in a cookie. The flash is not signed:
// it carries nothing but a display string the client already chose to send.
func setFlash(c *fiber.Ctx, category, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    category + "|" + url.QueryEscape(message),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	category, escaped, found := strings.Cut(raw, "|")
	if !found {
		return nil
	}
	message, err := url.QueryUnescape(escaped)
	if err != nil {
		return nil
	}
	return &Flash{Category: category, Message: message}
}

// redirectWithFlash sets a flash message and redirects with 303 so the
// browser always follows with a GET, even after a form POST.
func (s *Server) redirectWithFlash(c *fiber.Ctx, location, category, message string) error {
	setFlash(c, category, message)
	return c.Redirect(location, fiber.StatusSeeOther)
}

// render renders the named view inside the main layout, injecting the
// current user and any pending flash message.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["User"] = s.currentUser(c)
	bind["Flash"] = popFlash(c)
	return c.Render(name, bind, "layouts/main")
}

// renderNotFound renders the standard 404 page.
func (s *Server) renderNotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return s.render(c, "notfound", nil)
}

// parseID extracts a route parameter as a positive uint. ok is false when
// the parameter is not a valid id.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
