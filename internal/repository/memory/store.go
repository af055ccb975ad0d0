// Package memory is an in-memory implementation of repository.Store. It backs
// the service tests and makes it possible to run the server without Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository"
)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[string]*models.Account // keyed by account number
	byEmail  map[string]string          // email -> account number
	ledger   []models.LedgerEntry
	support  []models.SupportMessage
}

func NewStore() *Store {
	return &Store{
		nextID:   1,
		accounts: make(map[string]*models.Account),
		byEmail:  make(map[string]string),
	}
}

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[account.Email]; exists {
		return fmt.Errorf("account %s: %w", account.Email, models.ErrConflict)
	}
	if _, exists := s.accounts[account.AccountNumber]; exists {
		return fmt.Errorf("account number %s: %w", account.AccountNumber, models.ErrConflict)
	}
	account.ID = s.nextID
	s.nextID++
	clone := *account
	s.accounts[account.AccountNumber] = &clone
	s.byEmail[account.Email] = account.AccountNumber
	return nil
}

func (s *Store) AccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(accountNumber)
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	number, ok := s.byEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return s.getLocked(number)
}

func (s *Store) SetAuthorization(ctx context.Context, accountNumber string, authorized bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountNumber]
	if !ok {
		return fmt.Errorf("account %s: %w", accountNumber, models.ErrNotFound)
	}
	account.IsAuthorized = authorized
	return nil
}

func (s *Store) LedgerForAccount(ctx context.Context, accountNumber string, limit int) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.LedgerEntry
	for _, e := range s.ledger {
		if e.FromAccount == accountNumber || e.ToAccount == accountNumber {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) CreateSupportMessage(ctx context.Context, msg *models.SupportMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.support = append(s.support, *msg)
	return nil
}

// SupportMessages returns a copy of all submitted messages. There is no read
// endpoint; this exists for tests and the seeding tools.
func (s *Store) SupportMessages() []models.SupportMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]models.SupportMessage, len(s.support))
	copy(copied, s.support)
	return copied
}

// Transact holds the store lock for the whole unit of work and restores a
// snapshot of balances and the ledger if fn fails or panics.
func (s *Store) Transact(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshotLocked()
	defer func() {
		if r := recover(); r != nil {
			s.restoreLocked(snapshot)
			panic(r)
		}
	}()

	if err := fn(&storeTx{store: s}); err != nil {
		s.restoreLocked(snapshot)
		return err
	}
	return nil
}

type stateSnapshot struct {
	accounts  map[string]models.Account
	ledgerLen int
}

func (s *Store) snapshotLocked() stateSnapshot {
	accounts := make(map[string]models.Account, len(s.accounts))
	for number, account := range s.accounts {
		accounts[number] = *account
	}
	return stateSnapshot{accounts: accounts, ledgerLen: len(s.ledger)}
}

func (s *Store) restoreLocked(snap stateSnapshot) {
	for number, account := range snap.accounts {
		clone := account
		s.accounts[number] = &clone
	}
	s.ledger = s.ledger[:snap.ledgerLen]
}

func (s *Store) getLocked(accountNumber string) (*models.Account, error) {
	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

type storeTx struct {
	store *Store
}

func (t *storeTx) AccountForUpdate(ctx context.Context, accountNumber string) (*models.Account, error) {
	return t.store.getLocked(accountNumber)
}

func (t *storeTx) AddBalance(ctx context.Context, accountNumber string, deltaCents int64) error {
	account, ok := t.store.accounts[accountNumber]
	if !ok {
		return fmt.Errorf("account %s: %w", accountNumber, models.ErrNotFound)
	}
	account.BalanceCents += deltaCents
	return nil
}

func (t *storeTx) AppendLedger(ctx context.Context, entry *models.LedgerEntry) error {
	t.store.ledger = append(t.store.ledger, *entry)
	return nil
}

var _ repository.Store = (*Store)(nil)
