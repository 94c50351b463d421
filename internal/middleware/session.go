package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/utils"
)

// Session value keys. The identity and role are captured at login time; a role
// change elsewhere takes effect on the user's next login.
const (
	SessionUserIDKey = "user_id"
	SessionRoleKey   = "user_role"
)

// NewSessionStore builds the cookie-keyed session store on top of the given
// storage backend (the database-backed one in production).
func NewSessionStore(storage fiber.Storage, ttl time.Duration) *session.Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return session.New(session.Config{
		Storage:        storage,
		Expiration:     ttl,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// LoadSession resolves the session identity into request locals so downstream
// handlers read user_id/user_role the same way regardless of auth mechanism.
func LoadSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Next()
		}

		if userID := normalizeSessionUserID(sess.Get(SessionUserIDKey)); userID > 0 {
			c.Locals("user_id", userID)
		}
		if role, ok := sess.Get(SessionRoleKey).(string); ok && role != "" {
			c.Locals("user_role", strings.ToLower(strings.TrimSpace(role)))
		}

		return c.Next()
	}
}

// RequireAuthenticated rejects requests that carry no resolved identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("user_id") == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests whose session role is not admin. Compose it
// after RequireAuthenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if normalizeRoleValue(c.Locals("user_role")) != models.RoleAdmin {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

func normalizeSessionUserID(value interface{}) uint {
	switch v := value.(type) {
	case uint:
		return v
	case uint64:
		return uint(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint(v)
	case int64:
		if v < 0 {
			return 0
		}
		return uint(v)
	case float64:
		if v < 0 {
			return 0
		}
		return uint(v)
	default:
		return 0
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
