package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/domain"
)

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Register(ctx context.Context, account *domain.Account) (bool, error) {
	const query = `
        INSERT INTO accounts (email, password, role)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO NOTHING`

	cmd, err := r.pool.Exec(ctx, query,
		strings.TrimSpace(account.Email),
		account.Password,
		account.Role,
	)
	if err != nil {
		return false, handlePgError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *accountRepository) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	const query = `
        SELECT email, password, role
        FROM accounts WHERE email=$1`

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(
		&account.Email,
		&account.Password,
		&account.Role,
	); err != nil {
		return nil, handlePgError(err)
	}
	if !auth.PasswordMatches(account.Password, password) {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT email, password, role FROM accounts ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.Email, &account.Password, &account.Role); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}
