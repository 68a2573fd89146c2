package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolvehub/issue-desk/internal/domain"
)

func TestAnonymous(t *testing.T) {
	s := Anonymous()

	assert.Equal(t, StateAnonymous, s.State)
	assert.False(t, s.Authenticated())
	assert.False(t, s.CanSubmitIssues())
	assert.False(t, s.CanTriageIssues())
	assert.Empty(t, s.Role())
}

func TestLogin_Intern(t *testing.T) {
	s, err := Anonymous().Login(" intern@gmail.com ", domain.RoleIntern)
	require.NoError(t, err)

	assert.Equal(t, StateIntern, s.State)
	assert.Equal(t, "intern@gmail.com", s.Email)
	assert.True(t, s.CanSubmitIssues())
	assert.False(t, s.CanTriageIssues())
	assert.Equal(t, domain.RoleIntern, s.Role())
}

func TestLogin_TechLead(t *testing.T) {
	s, err := Anonymous().Login("lead@gmail.com", domain.RoleTechLead)
	require.NoError(t, err)

	assert.Equal(t, StateTechLead, s.State)
	assert.True(t, s.CanTriageIssues())
	assert.False(t, s.CanSubmitIssues())
}

func TestLogin_UnknownRole(t *testing.T) {
	s, err := Anonymous().Login("x@gmail.com", domain.Role("Manager"))
	assert.Error(t, err)
	assert.Equal(t, StateAnonymous, s.State)
}

func TestLogin_FromAuthenticatedState(t *testing.T) {
	s, err := Anonymous().Login("lead@gmail.com", domain.RoleTechLead)
	require.NoError(t, err)

	_, err = s.Login("intern@gmail.com", domain.RoleIntern)
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)
}

func TestLogout(t *testing.T) {
	s, err := Anonymous().Login("lead@gmail.com", domain.RoleTechLead)
	require.NoError(t, err)
	s = s.WithToken("tok", time.Now().Add(time.Hour))

	out := s.Logout()
	assert.Equal(t, Anonymous(), out)
	assert.Equal(t, Anonymous(), Anonymous().Logout())
}
