// Package flash carries one-shot user-facing messages across a redirect
// in a short-lived cookie.
package flash

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "flash"

// Set stores msg for the next rendered page.
func Set(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and clears it.
func Pop(c *fiber.Ctx) string {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}
