package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/persistence"
)

type storeFactory func(t *testing.T) (AccountRepository, IssueRepository)

func csvStores(t *testing.T) (AccountRepository, IssueRepository) {
	dir := t.TempDir()
	return NewCSVAccountRepository(filepath.Join(dir, "users.csv")),
		NewCSVIssueRepository(filepath.Join(dir, "issues.csv"))
}

func sqliteStores(t *testing.T) (AccountRepository, IssueRepository) {
	db, err := persistence.NewSQLite(filepath.Join(t.TempDir(), "desk.db"), 2, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return NewSQLiteAccountRepository(db), NewSQLiteIssueRepository(db)
}

// storeFactories lists the drivers every contract test runs against. The
// integration build adds postgres.
var storeFactories = map[string]storeFactory{
	"csv":    csvStores,
	"sqlite": sqliteStores,
}

func forEachStore(t *testing.T, run func(t *testing.T, accounts AccountRepository, issues IssueRepository)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			accounts, issues := factory(t)
			run(t, accounts, issues)
		})
	}
}

func sampleIssue(id string) *domain.Issue {
	return &domain.Issue{
		ID:          id,
		Name:        "Alice",
		Email:       "alice@gmail.com",
		College:     "MIT",
		Title:       "Login fails",
		Description: "Cannot log in",
		Urgency:     domain.IssueUrgencyHigh,
		Status:      domain.IssueStatusOpen,
		Timestamp:   "2025-01-01 12:00:00",
	}
}

func TestAccounts_RegisterThenAuthenticate(t *testing.T) {
	forEachStore(t, func(t *testing.T, accounts AccountRepository, _ IssueRepository) {
		ctx := context.Background()

		ok, err := accounts.Register(ctx, &domain.Account{Email: "lead@gmail.com", Password: "pw", Role: domain.RoleTechLead})
		require.NoError(t, err)
		assert.True(t, ok)

		account, err := accounts.Authenticate(ctx, "lead@gmail.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleTechLead, account.Role)
	})
}

func TestAccounts_DuplicateKeepsFirst(t *testing.T) {
	forEachStore(t, func(t *testing.T, accounts AccountRepository, _ IssueRepository) {
		ctx := context.Background()

		ok, err := accounts.Register(ctx, &domain.Account{Email: "a@gmail.com", Password: "first", Role: domain.RoleIntern})
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = accounts.Register(ctx, &domain.Account{Email: " a@gmail.com", Password: "second", Role: domain.RoleTechLead})
		require.NoError(t, err)
		assert.False(t, ok)

		account, err := accounts.Authenticate(ctx, "a@gmail.com", "first")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleIntern, account.Role)

		_, err = accounts.Authenticate(ctx, "a@gmail.com", "second")
		assert.ErrorIs(t, err, ErrNotFound)

		all, err := accounts.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestAccounts_AuthenticateTrims(t *testing.T) {
	forEachStore(t, func(t *testing.T, accounts AccountRepository, _ IssueRepository) {
		ctx := context.Background()

		_, err := accounts.Register(ctx, &domain.Account{Email: "a@gmail.com", Password: "pw", Role: domain.RoleIntern})
		require.NoError(t, err)

		account, err := accounts.Authenticate(ctx, " a@gmail.com ", " pw ")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleIntern, account.Role)

		_, err = accounts.Authenticate(ctx, "b@gmail.com", "pw")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestIssues_CreateThenList(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ AccountRepository, issues IssueRepository) {
		ctx := context.Background()

		require.NoError(t, issues.Create(ctx, sampleIssue("1")))
		require.NoError(t, issues.Create(ctx, sampleIssue("2")))

		list, err := issues.List(ctx, IssueFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "1", list[0].ID)
		assert.Equal(t, "2", list[1].ID)
		assert.Equal(t, domain.IssueStatusOpen, list[0].Status)
		assert.Empty(t, list[0].ResolvedBy)
		assert.Empty(t, list[0].Response)
	})
}

func TestIssues_CreateDuplicateID(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ AccountRepository, issues IssueRepository) {
		ctx := context.Background()

		require.NoError(t, issues.Create(ctx, sampleIssue("1")))
		assert.ErrorIs(t, issues.Create(ctx, sampleIssue("1")), ErrAlreadyExists)
	})
}

func TestIssues_ResolveAndOverwrite(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ AccountRepository, issues IssueRepository) {
		ctx := context.Background()
		require.NoError(t, issues.Create(ctx, sampleIssue("1")))
		require.NoError(t, issues.Create(ctx, sampleIssue("2")))

		ok, err := issues.Resolve(ctx, "1", "lead@gmail.com", "fixed")
		require.NoError(t, err)
		assert.True(t, ok)

		issue, err := issues.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.IssueStatusResolved, issue.Status)
		assert.Equal(t, "lead@gmail.com", issue.ResolvedBy)
		assert.Equal(t, "fixed", issue.Response)

		ok, err = issues.Resolve(ctx, "1", "other@gmail.com", "again")
		require.NoError(t, err)
		assert.True(t, ok)

		issue, err = issues.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "other@gmail.com", issue.ResolvedBy)
		assert.Equal(t, "again", issue.Response)

		resolved := domain.IssueStatusResolved
		list, err := issues.List(ctx, IssueFilter{Status: &resolved})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "1", list[0].ID)

		open := domain.IssueStatusOpen
		list, err = issues.List(ctx, IssueFilter{Status: &open})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "2", list[0].ID)
	})
}

func TestIssues_ResolveUnknownIsNoop(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ AccountRepository, issues IssueRepository) {
		ctx := context.Background()
		require.NoError(t, issues.Create(ctx, sampleIssue("1")))

		ok, err := issues.Resolve(ctx, "missing", "lead@gmail.com", "fixed")
		require.NoError(t, err)
		assert.False(t, ok)

		issue, err := issues.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.IssueStatusOpen, issue.Status)

		_, err = issues.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
