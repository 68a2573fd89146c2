package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/resolvehub/issue-desk/pkg/util"
)

const sessionKey = "auth_session"

// SessionMiddleware resolves the caller's session from an optional bearer token.
type SessionMiddleware struct {
	tokens      *TokenManager
	revocations RevocationStore
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, revocations RevocationStore) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, revocations: revocations}
}

// Handle stores an Anonymous session when no Authorization header is sent and
// rejects malformed, expired or revoked tokens.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		c.Locals(sessionKey, Anonymous())
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return apperrors.NewUnauthorized("session ended")
		}
	}

	session, err := Anonymous().Login(claims.Email, claims.Role)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token role")
	}
	if claims.ExpiresAt != nil {
		session = session.WithToken(claims.ID, claims.ExpiresAt.Time)
	}

	c.Locals(sessionKey, session)
	return c.Next()
}

// SessionFromContext retrieves the caller's session; Anonymous when none was stored.
func SessionFromContext(c *fiber.Ctx) Session {
	if session, ok := c.Locals(sessionKey).(Session); ok {
		return session
	}
	return Anonymous()
}
