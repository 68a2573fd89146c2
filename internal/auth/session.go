package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/resolvehub/issue-desk/internal/domain"
)

// SessionState is the caller's position in the role gate.
type SessionState string

const (
	StateAnonymous SessionState = "Anonymous"
	StateIntern    SessionState = "Intern"
	StateTechLead  SessionState = "TechLead"
)

// ErrAlreadyAuthenticated is returned by Login on a non-anonymous session.
var ErrAlreadyAuthenticated = errors.New("session already authenticated")

// Session is the explicit authorization context handed to every gated operation.
// The zero value is not valid; start from Anonymous.
type Session struct {
	State     SessionState
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Anonymous returns an unauthenticated session.
func Anonymous() Session {
	return Session{State: StateAnonymous}
}

// Login moves an anonymous session to the state matching role.
func (s Session) Login(email string, role domain.Role) (Session, error) {
	if s.authenticated() {
		return s, ErrAlreadyAuthenticated
	}
	state, ok := stateForRole(role)
	if !ok {
		return s, errors.New("unknown role")
	}
	return Session{State: state, Email: strings.TrimSpace(email)}, nil
}

// Logout returns to Anonymous from any state.
func (s Session) Logout() Session {
	return Anonymous()
}

// WithToken binds the session to the bearer token that carries it.
func (s Session) WithToken(tokenID string, expiresAt time.Time) Session {
	s.TokenID = tokenID
	s.ExpiresAt = expiresAt
	return s
}

// Authenticated reports whether the caller has signed in.
func (s Session) Authenticated() bool {
	return s.authenticated()
}

func (s Session) authenticated() bool {
	return s.State == StateIntern || s.State == StateTechLead
}

// Role returns the account role behind the session, or "" when anonymous.
func (s Session) Role() domain.Role {
	switch s.State {
	case StateIntern:
		return domain.RoleIntern
	case StateTechLead:
		return domain.RoleTechLead
	}
	return ""
}

// CanSubmitIssues reports whether the session may raise issues.
func (s Session) CanSubmitIssues() bool {
	return s.State == StateIntern
}

// CanTriageIssues reports whether the session may list and resolve issues.
func (s Session) CanTriageIssues() bool {
	return s.State == StateTechLead
}

func stateForRole(role domain.Role) (SessionState, bool) {
	switch role {
	case domain.RoleIntern:
		return StateIntern, true
	case domain.RoleTechLead:
		return StateTechLead, true
	}
	return "", false
}
