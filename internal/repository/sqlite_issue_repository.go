package repository

import (
	"context"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/persistence"
)

const sqliteIssueColumns = `id, name, email, college, title, description, urgency, status, created_at, resolved_by, response`

type sqliteIssueRepository struct {
	db *persistence.SQLite
}

// NewSQLiteIssueRepository returns an embedded-database implementation. Resolve
// updates a single row, so concurrent resolutions never overwrite each other's issues.
func NewSQLiteIssueRepository(db *persistence.SQLite) IssueRepository {
	return &sqliteIssueRepository{db: db}
}

func (r *sqliteIssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return err
	}
	defer r.db.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO issues (`+sqliteIssueColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				issue.ID,
				issue.Name,
				issue.Email,
				issue.College,
				issue.Title,
				issue.Description,
				string(issue.Urgency),
				string(issue.Status),
				issue.Timestamp,
				issue.ResolvedBy,
				issue.Response,
			},
		})
	return handleSQLiteError(err)
}

func (r *sqliteIssueRepository) List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.db.Put(conn)

	query := `SELECT ` + sqliteIssueColumns + ` FROM issues`
	var args []any
	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY seq`

	issues := []domain.Issue{}
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			issues = append(issues, scanSQLiteIssue(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *sqliteIssueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.db.Put(conn)

	var found *domain.Issue
	err = sqlitex.Execute(conn,
		`SELECT `+sqliteIssueColumns+` FROM issues WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				issue := scanSQLiteIssue(stmt)
				found = &issue
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *sqliteIssueRepository) Resolve(ctx context.Context, id, resolvedBy, response string) (bool, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return false, err
	}
	defer r.db.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE issues SET status = ?, resolved_by = ?, response = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{string(domain.IssueStatusResolved), resolvedBy, response, id},
		})
	if err != nil {
		return false, err
	}
	return conn.Changes() > 0, nil
}

func scanSQLiteIssue(stmt *sqlite.Stmt) domain.Issue {
	return domain.Issue{
		ID:          stmt.ColumnText(0),
		Name:        stmt.ColumnText(1),
		Email:       stmt.ColumnText(2),
		College:     stmt.ColumnText(3),
		Title:       stmt.ColumnText(4),
		Description: stmt.ColumnText(5),
		Urgency:     domain.IssueUrgency(stmt.ColumnText(6)),
		Status:      domain.IssueStatus(stmt.ColumnText(7)),
		Timestamp:   stmt.ColumnText(8),
		ResolvedBy:  stmt.ColumnText(9),
		Response:    stmt.ColumnText(10),
	}
}
