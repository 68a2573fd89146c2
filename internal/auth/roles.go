package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/resolvehub/issue-desk/pkg/util"
)

// RequireSession ensures the caller signed in.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SessionFromContext(c).Authenticated() {
			return apperrors.NewUnauthorized("login required")
		}
		return c.Next()
	}
}

// RequireState ensures the session is in one of the allowed states.
func RequireState(allowed ...SessionState) fiber.Handler {
	allowedSet := make(map[SessionState]struct{}, len(allowed))
	for _, state := range allowed {
		allowedSet[state] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session := SessionFromContext(c)
		if !session.Authenticated() {
			return apperrors.NewUnauthorized("login required")
		}
		if _, ok := allowedSet[session.State]; !ok {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
