package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/resolvehub/issue-desk/internal/repository"
)

// ImportResult counts what an import copied and skipped.
type ImportResult struct {
	Accounts        int
	Issues          int
	SkippedAccounts int
	SkippedIssues   int
}

// ImportService copies flat-file records into a database-backed store.
type ImportService struct {
	logger *zap.Logger
}

// NewImportService builds the service.
func NewImportService(logger *zap.Logger) *ImportService {
	return &ImportService{logger: logger}
}

// Import reads accounts and issues from the source stores, normalizing legacy
// layouts on the way, and appends them to the destinations. Records whose key
// already exists are skipped, so importing twice is harmless.
func (s *ImportService) Import(
	ctx context.Context,
	srcAccounts repository.AccountRepository,
	srcIssues repository.IssueRepository,
	dstAccounts repository.AccountRepository,
	dstIssues repository.IssueRepository,
) (ImportResult, error) {
	var result ImportResult

	accounts, err := srcAccounts.List(ctx)
	if err != nil {
		return result, fmt.Errorf("read accounts: %w", err)
	}
	for i := range accounts {
		created, err := dstAccounts.Register(ctx, &accounts[i])
		if err != nil {
			return result, fmt.Errorf("import account %s: %w", accounts[i].Email, err)
		}
		if created {
			result.Accounts++
		} else {
			result.SkippedAccounts++
		}
	}

	issues, err := srcIssues.List(ctx, repository.IssueFilter{})
	if err != nil {
		return result, fmt.Errorf("read issues: %w", err)
	}
	for i := range issues {
		err := dstIssues.Create(ctx, &issues[i])
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			result.SkippedIssues++
		case err != nil:
			return result, fmt.Errorf("import issue %s: %w", issues[i].ID, err)
		default:
			result.Issues++
		}
	}

	s.logger.Info("flat files imported",
		zap.Int("accounts", result.Accounts),
		zap.Int("issues", result.Issues),
		zap.Int("skipped_accounts", result.SkippedAccounts),
		zap.Int("skipped_issues", result.SkippedIssues))
	return result, nil
}
