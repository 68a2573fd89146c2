package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolvehub/issue-desk/internal/domain"
)

func TestCSVIssues_ReadsLegacyFileAndRewritesCanonical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.csv")
	legacy := "ID,Name,Email,College,Issue,Urgency,Status,TechLeadResponse\n" +
		"1,Alice,alice@gmail.com,MIT,Login fails,High,Open,\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	repo := NewCSVIssueRepository(path)
	ctx := context.Background()

	list, err := repo.List(ctx, IssueFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Login fails", list[0].Title)
	assert.Empty(t, list[0].Description)

	ok, err := repo.Resolve(ctx, "1", "bob@gmail.com", "Reset password")
	require.NoError(t, err)
	require.True(t, ok)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, "ID,Name,Email,College,Title,Description,Urgency,Status,Timestamp,ResolvedBy,Response", lines[0])
	assert.Equal(t, "1,Alice,alice@gmail.com,MIT,Login fails,,High,Resolved,,bob@gmail.com,Reset password", lines[1])
}

func TestCSVAccounts_MissingFileIsEmpty(t *testing.T) {
	repo := NewCSVAccountRepository(filepath.Join(t.TempDir(), "nested", "users.csv"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)

	ok, err := repo.Register(context.Background(), &domain.Account{Email: "a@gmail.com", Password: "pw", Role: domain.RoleIntern})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCSVAccounts_FileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	repo := NewCSVAccountRepository(path)

	_, err := repo.Register(context.Background(), &domain.Account{Email: "a@gmail.com", Password: "pw", Role: domain.RoleTechLead})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "email,password,role\na@gmail.com,pw,Tech Lead\n", string(raw))
}

func TestCSVStores_StopOnEndedContext(t *testing.T) {
	dir := t.TempDir()
	issuesPath := filepath.Join(dir, "issues.csv")
	issues := NewCSVIssueRepository(issuesPath)
	accounts := NewCSVAccountRepository(filepath.Join(dir, "users.csv"))

	require.NoError(t, issues.Create(context.Background(), sampleIssue("1")))
	before, err := os.ReadFile(issuesPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = issues.Resolve(ctx, "1", "lead@gmail.com", "fixed")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, issues.Create(ctx, sampleIssue("2")), context.Canceled)
	_, err = accounts.Register(ctx, &domain.Account{Email: "a@gmail.com", Password: "pw", Role: domain.RoleIntern})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = accounts.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	after, err := os.ReadFile(issuesPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, filepath.Join(dir, "users.csv"))
}
