package repository

import (
	"context"

	"github.com/resolvehub/issue-desk/internal/domain"
)

// AccountRepository defines persistence access for registered users.
type AccountRepository interface {
	// Register appends the account unless its trimmed email is already present,
	// in which case it returns false and leaves the stored record untouched.
	Register(ctx context.Context, account *domain.Account) (bool, error)
	// Authenticate returns the first account whose trimmed email and password
	// match, or ErrNotFound.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

// IssueFilter narrows issue listings.
type IssueFilter struct {
	Status *domain.IssueStatus
}

func (f IssueFilter) matches(issue domain.Issue) bool {
	return f.Status == nil || issue.Status == *f.Status
}

// IssueRepository encapsulates issue persistence. Listings keep insertion order.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error)
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	// Resolve sets Status, ResolvedBy and Response on the issue with id. It
	// reports false without error when no such issue exists.
	Resolve(ctx context.Context, id, resolvedBy, response string) (bool, error)
}
