// Package postgres implements repository.Store against PostgreSQL. It is the
// source of truth for balances; the ledger is written in the same database
// transaction as the balance mutation it records.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (name, email, password_hash, account_number, balance_cents, is_authorized, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.PasswordHash, account.AccountNumber,
		account.BalanceCents, account.IsAuthorized, account.IsAdmin, account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("account %s: %w", account.Email, models.ErrConflict)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *Store) AccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	return scanAccount(s.db.QueryRowContext(ctx, accountQuery+` WHERE account_number = $1`, accountNumber))
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return scanAccount(s.db.QueryRowContext(ctx, accountQuery+` WHERE email = $1`, email))
}

func (s *Store) SetAuthorization(ctx context.Context, accountNumber string, authorized bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET is_authorized = $2 WHERE account_number = $1`,
		accountNumber, authorized,
	)
	if err != nil {
		return fmt.Errorf("failed to update authorization: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %s: %w", accountNumber, models.ErrNotFound)
	}
	return nil
}

func (s *Store) LedgerForAccount(ctx context.Context, accountNumber string, limit int) ([]models.LedgerEntry, error) {
	query := `
		SELECT id, from_account, to_account, amount_cents, type, note, created_at
		FROM ledger_entries
		WHERE from_account = $1 OR to_account = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, accountNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var fromAccount, note sql.NullString
		if err := rows.Scan(&entry.ID, &fromAccount, &entry.ToAccount,
			&entry.AmountCents, &entry.Type, &note, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entry.FromAccount = fromAccount.String
		entry.Note = note.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger entries: %w", err)
	}
	return entries, nil
}

func (s *Store) CreateSupportMessage(ctx context.Context, msg *models.SupportMessage) error {
	query := `
		INSERT INTO support_messages (id, account_number, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, msg.ID, msg.AccountNumber, msg.Subject, msg.Message, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create support message: %w", err)
	}
	return nil
}

// Transact wraps fn in a database transaction with commit-or-rollback on all
// exit paths, including panics.
func (s *Store) Transact(ctx context.Context, fn func(tx repository.Tx) error) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			dbTx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&storeTx{tx: dbTx}); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed after %v: %w", err, rbErr)
		}
		return err
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) AccountForUpdate(ctx context.Context, accountNumber string) (*models.Account, error) {
	return scanAccount(t.tx.QueryRowContext(ctx, accountQuery+` WHERE account_number = $1 FOR UPDATE`, accountNumber))
}

func (t *storeTx) AddBalance(ctx context.Context, accountNumber string, deltaCents int64) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE accounts SET balance_cents = balance_cents + $2 WHERE account_number = $1`,
		accountNumber, deltaCents,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance for %s: %w", accountNumber, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %s: %w", accountNumber, models.ErrNotFound)
	}
	return nil
}

func (t *storeTx) AppendLedger(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, from_account, to_account, amount_cents, type, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := t.tx.ExecContext(ctx, query,
		entry.ID, nullString(entry.FromAccount), entry.ToAccount,
		entry.AmountCents, entry.Type, nullString(entry.Note), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

const accountQuery = `
	SELECT id, name, email, password_hash, account_number, balance_cents, is_authorized, is_admin, created_at
	FROM accounts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.AccountNumber, &account.BalanceCents, &account.IsAuthorized,
		&account.IsAdmin, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ repository.Store = (*Store)(nil)
