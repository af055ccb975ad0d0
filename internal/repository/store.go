// Package repository declares the persistence contract for the bank. Two
// implementations exist: postgres (the real store) and memory (used by tests
// and local runs without a database).
package repository

import (
	"context"

	"github.com/Justinvibez/prime-vault/internal/models"
)

// Store is the single logical data store shared by all requests.
type Store interface {
	// CreateAccount inserts a new account. Returns models.ErrConflict when
	// the email or account number is already taken.
	CreateAccount(ctx context.Context, account *models.Account) error

	// AccountByNumber returns models.ErrNotFound on a normal miss.
	AccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error)

	// AccountByEmail returns models.ErrNotFound on a normal miss.
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// SetAuthorization toggles the outbound-transfer gate for an account.
	SetAuthorization(ctx context.Context, accountNumber string, authorized bool) error

	// LedgerForAccount lists entries where the account is sender or
	// recipient, newest first, bounded by limit.
	LedgerForAccount(ctx context.Context, accountNumber string, limit int) ([]models.LedgerEntry, error)

	// CreateSupportMessage appends a support message.
	CreateSupportMessage(ctx context.Context, msg *models.SupportMessage) error

	// Transact runs fn as one atomic unit of work. If fn returns an error or
	// panics, every mutation made through the Tx is rolled back.
	Transact(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the balance-mutating surface available inside Transact. Callers must
// acquire rows in ascending account-number order when locking more than one.
type Tx interface {
	// AccountForUpdate loads an account and locks it for the duration of the
	// unit of work. Returns models.ErrNotFound on a miss.
	AccountForUpdate(ctx context.Context, accountNumber string) (*models.Account, error)

	// AddBalance applies a signed delta to an account's balance.
	AddBalance(ctx context.Context, accountNumber string, deltaCents int64) error

	// AppendLedger writes one immutable ledger entry.
	AppendLedger(ctx context.Context, entry *models.LedgerEntry) error
}
