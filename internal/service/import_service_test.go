package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resolvehub/issue-desk/internal/persistence"
	"github.com/resolvehub/issue-desk/internal/repository"
)

func TestImportService_CopiesFlatFilesIntoSQLite(t *testing.T) {
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "users.csv")
	issuesPath := filepath.Join(dir, "issues.csv")
	require.NoError(t, os.WriteFile(usersPath, []byte("email,password,role\nalice@gmail.com,a1,Developer Intern\nbob@gmail.com,b1,Tech Lead\n"), 0o644))
	require.NoError(t, os.WriteFile(issuesPath, []byte("ID,Name,Email,College,Issue,Urgency,Status,TechLeadResponse\n1,Alice,alice@gmail.com,MIT,Login fails,High,Resolved,Done\n"), 0o644))

	db, err := persistence.NewSQLite(filepath.Join(dir, "desk.db"), 2, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	srcAccounts := repository.NewCSVAccountRepository(usersPath)
	srcIssues := repository.NewCSVIssueRepository(issuesPath)
	dstAccounts := repository.NewSQLiteAccountRepository(db)
	dstIssues := repository.NewSQLiteIssueRepository(db)

	svc := NewImportService(zap.NewNop())
	ctx := context.Background()

	result, err := svc.Import(ctx, srcAccounts, srcIssues, dstAccounts, dstIssues)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Accounts: 2, Issues: 1}, result)

	issue, err := dstIssues.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Login fails", issue.Title)
	assert.Equal(t, "Done", issue.Response)

	again, err := svc.Import(ctx, srcAccounts, srcIssues, dstAccounts, dstIssues)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{SkippedAccounts: 2, SkippedIssues: 1}, again)
}
