package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/config"
	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/repository"
	apperrors "github.com/resolvehub/issue-desk/pkg/util"
)

// AccountService coordinates registration, login and logout.
type AccountService struct {
	accounts      repository.AccountRepository
	tokens        *auth.TokenManager
	revocations   auth.RevocationStore
	hashPasswords bool
	bcryptCost    int
	logger        *zap.Logger
}

// AccountDependencies encapsulates collaborators for the account service.
type AccountDependencies struct {
	AccountRepo  repository.AccountRepository
	TokenManager *auth.TokenManager
	Revocations  auth.RevocationStore
	Logger       *zap.Logger
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Account   *domain.Account
	Session   auth.Session
	Token     string
	ExpiresAt time.Time
}

// NewAccountService builds the service.
func NewAccountService(cfg config.AuthConfig, deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accounts:      deps.AccountRepo,
		tokens:        deps.TokenManager,
		revocations:   deps.Revocations,
		hashPasswords: cfg.HashPasswords,
		bcryptCost:    cfg.BcryptCost,
		logger:        logger,
	}
}

// Register creates an account. The stored record keeps the trimmed email and
// the password as typed; login compares passwords after trimming.
func (s *AccountService) Register(ctx context.Context, email, password, role string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	role = strings.TrimSpace(role)

	if missing := missingFields(map[string]string{
		"email": email, "password": strings.TrimSpace(password), "role": role,
	}, "email", "password", "role"); len(missing) > 0 {
		return nil, apperrors.NewValidationError("please fill in all fields", map[string]any{"missing": missing})
	}
	if !domain.ValidEmail(email) {
		return nil, apperrors.NewValidationError("email must end with "+domain.EmailSuffix, map[string]any{"email": email})
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	stored := password
	if s.hashPasswords {
		hash, err := auth.HashPassword(strings.TrimSpace(password), s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		stored = hash
	}

	account := &domain.Account{Email: email, Password: stored, Role: parsedRole}
	created, err := s.accounts.Register(ctx, account)
	if err != nil {
		return nil, mapRepoError(err, "account", nil)
	}
	if !created {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}

	s.logger.Info("account registered", zap.String("email", email), zap.String("role", string(parsedRole)))
	return account, nil
}

// Login matches credentials and moves the anonymous session to the account's role.
func (s *AccountService) Login(ctx context.Context, session auth.Session, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if missing := missingFields(map[string]string{
		"email": email, "password": password,
	}, "email", "password"); len(missing) > 0 {
		return nil, apperrors.NewValidationError("please fill in all fields", map[string]any{"missing": missing})
	}
	if !domain.ValidEmail(email) {
		return nil, apperrors.NewValidationError("email must end with "+domain.EmailSuffix, map[string]any{"email": email})
	}

	account, err := s.accounts.Authenticate(ctx, email, password)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Info("login rejected", zap.String("email", email))
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	next, err := session.Login(account.Email, account.Role)
	if errors.Is(err, auth.ErrAlreadyAuthenticated) {
		return nil, apperrors.NewConflict("already logged in", map[string]any{"email": session.Email})
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	token, tokenID, expiresAt, err := s.tokens.GenerateToken(account.Email, account.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("login", zap.String("email", account.Email), zap.String("state", string(next.State)))
	return &LoginResult{
		Account:   account,
		Session:   next.WithToken(tokenID, expiresAt),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the session's token and returns an anonymous session.
func (s *AccountService) Logout(ctx context.Context, session auth.Session) (auth.Session, error) {
	if session.TokenID != "" && s.revocations != nil {
		if err := s.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
			return session, apperrors.NewInternalError(err)
		}
	}
	if session.Authenticated() {
		s.logger.Info("logout", zap.String("email", session.Email))
	}
	return session.Logout(), nil
}
