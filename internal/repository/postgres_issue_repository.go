package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resolvehub/issue-desk/internal/domain"
)

const issueColumns = `id, name, email, college, title, description, urgency, status, created_at, resolved_by, response`

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates a Postgres-backed repository.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (` + issueColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.pool.Exec(ctx, query,
		issue.ID,
		issue.Name,
		issue.Email,
		issue.College,
		issue.Title,
		issue.Description,
		issue.Urgency,
		issue.Status,
		issue.Timestamp,
		issue.ResolvedBy,
		issue.Response,
	)
	return handlePgError(err)
}

func (r *issueRepository) List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues`
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` WHERE status=$1`
	}
	query += ` ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	const query = `SELECT ` + issueColumns + ` FROM issues WHERE id=$1`
	var issue domain.Issue
	if err := scanIssue(r.pool.QueryRow(ctx, query, id), &issue); err != nil {
		return nil, handlePgError(err)
	}
	return &issue, nil
}

func (r *issueRepository) Resolve(ctx context.Context, id, resolvedBy, response string) (bool, error) {
	const query = `
        UPDATE issues SET status=$1, resolved_by=$2, response=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, domain.IssueStatusResolved, resolvedBy, response, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanIssue(row pgx.Row, issue *domain.Issue) error {
	return row.Scan(
		&issue.ID,
		&issue.Name,
		&issue.Email,
		&issue.College,
		&issue.Title,
		&issue.Description,
		&issue.Urgency,
		&issue.Status,
		&issue.Timestamp,
		&issue.ResolvedBy,
		&issue.Response,
	)
}

func scanIssues(rows pgx.Rows) ([]domain.Issue, error) {
	result := []domain.Issue{}
	for rows.Next() {
		var issue domain.Issue
		if err := scanIssue(rows, &issue); err != nil {
			return nil, err
		}
		result = append(result, issue)
	}
	return result, rows.Err()
}
