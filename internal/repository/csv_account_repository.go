package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/schema"
)

type csvAccountRepository struct {
	mu   sync.Mutex
	file flatFile
}

// NewCSVAccountRepository stores accounts in a users.csv flat file.
func NewCSVAccountRepository(path string) AccountRepository {
	return &csvAccountRepository{file: flatFile{path: path, schema: schema.Accounts}}
}

func (r *csvAccountRepository) Register(ctx context.Context, account *domain.Account) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.file.load(ctx)
	if err != nil {
		return false, err
	}
	email := strings.TrimSpace(account.Email)
	for _, existing := range schema.AccountsFromTable(table) {
		if strings.TrimSpace(existing.Email) == email {
			return false, nil
		}
	}

	table.Rows = append(table.Rows, schema.AccountRow(*account))
	if err := r.file.save(ctx, table); err != nil {
		return false, err
	}
	return true, nil
}

func (r *csvAccountRepository) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.file.load(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	for _, account := range schema.AccountsFromTable(table) {
		if strings.TrimSpace(account.Email) == email && auth.PasswordMatches(account.Password, password) {
			return &account, nil
		}
	}
	return nil, ErrNotFound
}

func (r *csvAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.file.load(ctx)
	if err != nil {
		return nil, err
	}
	return schema.AccountsFromTable(table), nil
}
