package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys shared between the auth handlers and the guard.
const (
	SessionKeyUserID        = "user_id"
	SessionKeyUsername      = "username"
	SessionKeyCoverUnlocked = "cover_unlocked"
)

// AuthRequired is a Fiber middleware that redirects to the login page unless
// the session carries an authenticated user. The user id and username are
// exposed through Locals for the handlers behind the guard.
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Redirect("/login", fiber.StatusFound)
		}

		userID, ok := sess.Get(SessionKeyUserID).(string)
		if !ok || userID == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}

		// Store identity in Fiber context for subsequent handlers
		c.Locals("user_id", userID)
		if username, ok := sess.Get(SessionKeyUsername).(string); ok {
			c.Locals("username", username)
		}

		// Continue to the next handler
		return c.Next()
	}
}
