package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Justinvibez/prime-vault/internal/metrics"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService performs privileged operations. The admin capability itself is
// checked upstream by the HTTP layer; these methods trust their caller.
type AdminService struct {
	store     repository.Store
	collector *metrics.Collector
	logger    *zap.Logger
}

func NewAdminService(store repository.Store, collector *metrics.Collector, logger *zap.Logger) *AdminService {
	return &AdminService{store: store, collector: collector, logger: logger}
}

// Deposit credits an account unconditionally and records a system-originated
// ledger entry, atomically with the balance update.
func (s *AdminService) Deposit(ctx context.Context, accountNumber string, amountCents int64) (*models.LedgerEntry, error) {
	entry, err := s.deposit(ctx, accountNumber, amountCents)
	s.collector.RecordDeposit(amountCents, err == nil)
	if err != nil {
		s.logger.Warn("deposit rejected",
			zap.String("account_number", accountNumber),
			zap.Int64("amount_cents", amountCents),
			zap.Error(err))
		return nil, err
	}
	s.logger.Info("deposit completed",
		zap.String("entry_id", entry.ID),
		zap.String("account_number", accountNumber),
		zap.Int64("amount_cents", amountCents))
	return entry, nil
}

func (s *AdminService) deposit(ctx context.Context, accountNumber string, amountCents int64) (*models.LedgerEntry, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", models.ErrInvalidInput)
	}

	var entry *models.LedgerEntry
	err := s.store.Transact(ctx, func(tx repository.Tx) error {
		if _, err := tx.AccountForUpdate(ctx, accountNumber); err != nil {
			return fmt.Errorf("account %s: %w", accountNumber, err)
		}
		if err := tx.AddBalance(ctx, accountNumber, amountCents); err != nil {
			return err
		}
		entry = &models.LedgerEntry{
			ID:          uuid.NewString(),
			ToAccount:   accountNumber,
			AmountCents: amountCents,
			Type:        models.EntryTypeDeposit,
			Note:        "admin deposit",
			CreatedAt:   time.Now().UTC(),
		}
		return tx.AppendLedger(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// SetAuthorization toggles the outbound-transfer gate. No ledger effect.
func (s *AdminService) SetAuthorization(ctx context.Context, accountNumber string, authorized bool) (*models.Account, error) {
	if err := s.store.SetAuthorization(ctx, accountNumber, authorized); err != nil {
		return nil, err
	}
	s.logger.Info("authorization updated",
		zap.String("account_number", accountNumber),
		zap.Bool("authorized", authorized))
	return s.store.AccountByNumber(ctx, accountNumber)
}
