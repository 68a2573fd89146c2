package repository

import (
	"context"
	"sync"

	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/schema"
)

type csvIssueRepository struct {
	mu   sync.Mutex
	file flatFile
}

// NewCSVIssueRepository stores issues in an issues.csv flat file. Every call is a
// full read-modify-write of the file.
func NewCSVIssueRepository(path string) IssueRepository {
	return &csvIssueRepository{file: flatFile{path: path, schema: schema.Issues}}
}

func (r *csvIssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.file.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range schema.IssuesFromTable(table) {
		if existing.ID == issue.ID {
			return ErrAlreadyExists
		}
	}
	table.Rows = append(table.Rows, schema.IssueRow(*issue))
	return r.file.save(ctx, table)
}

func (r *csvIssueRepository) List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.file.load(ctx)
	if err != nil {
		return nil, err
	}
	issues := schema.IssuesFromTable(table)
	result := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if filter.matches(issue) {
			result = append(result, issue)
		}
	}
	return result, nil
}

func (r *csvIssueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.file.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, issue := range schema.IssuesFromTable(table) {
		if issue.ID == id {
			return &issue, nil
		}
	}
	return nil, ErrNotFound
}

func (r *csvIssueRepository) Resolve(ctx context.Context, id, resolvedBy, response string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.file.load(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for i, row := range table.Rows {
		issue := schema.IssueFromRow(row)
		if issue.ID != id {
			continue
		}
		issue.Resolve(resolvedBy, response)
		table.Rows[i] = schema.IssueRow(issue)
		found = true
	}
	if !found {
		return false, nil
	}
	return true, r.file.save(ctx, table)
}
