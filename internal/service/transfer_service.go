package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Justinvibez/prime-vault/internal/metrics"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransferService moves money between accounts. Every transfer runs as one
// atomic unit of work: both balance updates and the ledger entry commit
// together or not at all.
type TransferService struct {
	store     repository.Store
	collector *metrics.Collector
	logger    *zap.Logger
}

func NewTransferService(store repository.Store, collector *metrics.Collector, logger *zap.Logger) *TransferService {
	return &TransferService{store: store, collector: collector, logger: logger}
}

func (s *TransferService) Transfer(ctx context.Context, fromAccount, toAccount string, amountCents int64, note string) (*models.LedgerEntry, error) {
	entry, err := s.transfer(ctx, fromAccount, toAccount, amountCents, note)
	s.collector.RecordTransfer(amountCents, err == nil)
	if err != nil {
		s.logger.Warn("transfer rejected",
			zap.String("from_account", fromAccount),
			zap.String("to_account", toAccount),
			zap.Int64("amount_cents", amountCents),
			zap.Error(err))
		return nil, err
	}
	s.logger.Info("transfer completed",
		zap.String("entry_id", entry.ID),
		zap.String("from_account", fromAccount),
		zap.String("to_account", toAccount),
		zap.Int64("amount_cents", amountCents))
	return entry, nil
}

func (s *TransferService) transfer(ctx context.Context, fromAccount, toAccount string, amountCents int64, note string) (*models.LedgerEntry, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", models.ErrInvalidInput)
	}
	if fromAccount == toAccount {
		return nil, fmt.Errorf("sender and recipient are the same account: %w", models.ErrInvalidInput)
	}

	var entry *models.LedgerEntry
	err := s.store.Transact(ctx, func(tx repository.Tx) error {
		sender, recipient, err := lockPair(ctx, tx, fromAccount, toAccount)
		if err != nil {
			return err
		}
		if sender == nil {
			return fmt.Errorf("sender account %s: %w", fromAccount, models.ErrNotFound)
		}
		if !sender.IsAuthorized {
			return fmt.Errorf("account %s is not authorized to transfer: %w", fromAccount, models.ErrForbidden)
		}
		if sender.BalanceCents < amountCents {
			return fmt.Errorf("balance %d below amount %d: %w", sender.BalanceCents, amountCents, models.ErrInsufficientFunds)
		}
		if recipient == nil {
			return fmt.Errorf("recipient account %s: %w", toAccount, models.ErrNotFound)
		}

		if err := tx.AddBalance(ctx, fromAccount, -amountCents); err != nil {
			return err
		}
		if err := tx.AddBalance(ctx, toAccount, amountCents); err != nil {
			return err
		}
		entry = &models.LedgerEntry{
			ID:          uuid.NewString(),
			FromAccount: fromAccount,
			ToAccount:   toAccount,
			AmountCents: amountCents,
			Type:        models.EntryTypeTransfer,
			Note:        note,
			CreatedAt:   time.Now().UTC(),
		}
		return tx.AppendLedger(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// lockPair locks both rows in ascending account-number order so that two
// concurrent transfers touching the same accounts never deadlock. Missing
// accounts are reported as nil so the caller controls failure precedence.
func lockPair(ctx context.Context, tx repository.Tx, fromAccount, toAccount string) (sender, recipient *models.Account, err error) {
	first, second := fromAccount, toAccount
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*models.Account, 2)
	for _, number := range []string{first, second} {
		account, err := tx.AccountForUpdate(ctx, number)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, nil, err
		}
		locked[number] = account
	}
	return locked[fromAccount], locked[toAccount], nil
}

// ListForAccount returns ledger entries where the account is sender or
// recipient, newest first. Limits outside (0, DefaultLedgerLimit] are clamped.
func (s *TransferService) ListForAccount(ctx context.Context, accountNumber string, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 || limit > models.DefaultLedgerLimit {
		limit = models.DefaultLedgerLimit
	}
	return s.store.LedgerForAccount(ctx, accountNumber, limit)
}
