package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository"
	"github.com/Justinvibez/prime-vault/internal/utils"
	"go.uber.org/zap"
)

// maxAllocationAttempts bounds the account-number allocation loop. Random
// 10-digit numbers collide rarely; the loop turns "rarely" into "never
// silently".
const maxAllocationAttempts = 5

// AccountService owns registration and account lookups. New accounts start
// with a zero balance and are not authorized to transfer.
type AccountService struct {
	store  repository.Store
	logger *zap.Logger

	// generateNumber is swappable in tests to force collisions.
	generateNumber func() string
}

func NewAccountService(store repository.Store, logger *zap.Logger) *AccountService {
	return &AccountService{
		store:          store,
		logger:         logger,
		generateNumber: utils.GenerateAccountNumber,
	}
}

func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", models.ErrInvalidInput)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		account := &models.Account{
			Name:          name,
			Email:         email,
			PasswordHash:  passwordHash,
			AccountNumber: s.generateNumber(),
			BalanceCents:  0,
			IsAuthorized:  false,
			CreatedAt:     time.Now().UTC(),
		}
		err := s.store.CreateAccount(ctx, account)
		if err == nil {
			s.logger.Info("account registered",
				zap.String("account_number", account.AccountNumber),
				zap.String("email", account.Email))
			return account, nil
		}
		if !errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		// A conflict is either a duplicate email or a collision on the
		// generated number. Only the latter is retryable.
		if _, lookupErr := s.store.AccountByEmail(ctx, email); lookupErr == nil {
			return nil, fmt.Errorf("email %s already in use: %w", email, models.ErrConflict)
		}
		s.logger.Warn("account number collision, retrying allocation",
			zap.String("account_number", account.AccountNumber),
			zap.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("could not allocate a unique account number after %d attempts: %w",
		maxAllocationAttempts, models.ErrConflict)
}

func (s *AccountService) FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	return s.store.AccountByNumber(ctx, accountNumber)
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.store.AccountByEmail(ctx, email)
}
