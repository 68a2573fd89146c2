package dto

import (
	"time"

	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/domain"
)

// RegisterRequest payload for the registration form. Role accepts
// "Developer Intern"/"intern" and "Tech Lead"/"techlead".
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse never carries the password.
type AccountResponse struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	State     auth.SessionState `json:"state"`
	Email     string            `json:"email,omitempty"`
	Role      domain.Role       `json:"role,omitempty"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
}

// NewSessionResponse maps a session for output.
func NewSessionResponse(session auth.Session) SessionResponse {
	resp := SessionResponse{
		State: session.State,
		Email: session.Email,
		Role:  session.Role(),
	}
	if !session.ExpiresAt.IsZero() {
		expiresAt := session.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}
	return resp
}
