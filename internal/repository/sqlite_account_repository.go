package repository

import (
	"context"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/persistence"
)

type sqliteAccountRepository struct {
	db *persistence.SQLite
}

// NewSQLiteAccountRepository returns an embedded-database implementation.
func NewSQLiteAccountRepository(db *persistence.SQLite) AccountRepository {
	return &sqliteAccountRepository{db: db}
}

func (r *sqliteAccountRepository) Register(ctx context.Context, account *domain.Account) (bool, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return false, err
	}
	defer r.db.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO accounts (email, password, role) VALUES (?, ?, ?)
         ON CONFLICT (email) DO NOTHING`,
		&sqlitex.ExecOptions{
			Args: []any{strings.TrimSpace(account.Email), account.Password, string(account.Role)},
		})
	if err != nil {
		return false, handleSQLiteError(err)
	}
	return conn.Changes() > 0, nil
}

func (r *sqliteAccountRepository) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.db.Put(conn)

	var match *domain.Account
	err = sqlitex.Execute(conn,
		`SELECT email, password, role FROM accounts WHERE email = ?`,
		&sqlitex.ExecOptions{
			Args: []any{strings.TrimSpace(email)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				account := scanSQLiteAccount(stmt)
				if match == nil && auth.PasswordMatches(account.Password, password) {
					match = &account
				}
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}

func (r *sqliteAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.db.Put(conn)

	var accounts []domain.Account
	err = sqlitex.Execute(conn,
		`SELECT email, password, role FROM accounts ORDER BY rowid`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				accounts = append(accounts, scanSQLiteAccount(stmt))
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func scanSQLiteAccount(stmt *sqlite.Stmt) domain.Account {
	return domain.Account{
		Email:    stmt.ColumnText(0),
		Password: stmt.ColumnText(1),
		Role:     domain.Role(stmt.ColumnText(2)),
	}
}
