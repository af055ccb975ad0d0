package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Justinvibez/prime-vault/internal/metrics"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository"
	"github.com/Justinvibez/prime-vault/internal/repository/memory"
	"go.uber.org/zap"
)

func seedAccount(t *testing.T, store repository.Store, number string, balanceCents int64, authorized bool) {
	t.Helper()
	err := store.CreateAccount(context.Background(), &models.Account{
		Name:          "Account " + number,
		Email:         number + "@example.com",
		PasswordHash:  "x",
		AccountNumber: number,
		BalanceCents:  0,
		IsAuthorized:  authorized,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed account %s: %v", number, err)
	}
	if balanceCents > 0 {
		err := store.Transact(context.Background(), func(tx repository.Tx) error {
			return tx.AddBalance(context.Background(), number, balanceCents)
		})
		if err != nil {
			t.Fatalf("seed balance for %s: %v", number, err)
		}
	}
}

func balanceOf(t *testing.T, store repository.Store, number string) int64 {
	t.Helper()
	account, err := store.AccountByNumber(context.Background(), number)
	if err != nil {
		t.Fatalf("get account %s: %v", number, err)
	}
	return account.BalanceCents
}

func newTransferService(store repository.Store) *TransferService {
	return NewTransferService(store, metrics.NewCollector(), zap.NewNop())
}

func TestTransferSuccess(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "1111111111", 5000, true)
	seedAccount(t, store, "2222222222", 0, false)
	svc := newTransferService(store)

	entry, err := svc.Transfer(context.Background(), "1111111111", "2222222222", 2000, "gift")
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if got := balanceOf(t, store, "1111111111"); got != 3000 {
		t.Errorf("sender balance = %d, want 3000", got)
	}
	if got := balanceOf(t, store, "2222222222"); got != 2000 {
		t.Errorf("recipient balance = %d, want 2000", got)
	}

	entries, err := store.LedgerForAccount(context.Background(), "1111111111", 10)
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ledger has %d entries, want exactly 1", len(entries))
	}
	got := entries[0]
	if got.ID != entry.ID || got.FromAccount != "1111111111" || got.ToAccount != "2222222222" ||
		got.AmountCents != 2000 || got.Type != models.EntryTypeTransfer || got.Note != "gift" {
		t.Errorf("unexpected ledger entry: %+v", got)
	}
}

func TestTransferFailures(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		amount  int64
		wantErr error
	}{
		{name: "insufficient funds", from: "1111111111", to: "2222222222", amount: 6000, wantErr: models.ErrInsufficientFunds},
		{name: "unauthorized sender", from: "2222222222", to: "1111111111", amount: 100, wantErr: models.ErrForbidden},
		{name: "sender not found", from: "9999999999", to: "2222222222", amount: 100, wantErr: models.ErrNotFound},
		{name: "recipient not found", from: "1111111111", to: "9999999999", amount: 100, wantErr: models.ErrNotFound},
		{name: "self transfer", from: "1111111111", to: "1111111111", amount: 100, wantErr: models.ErrInvalidInput},
		{name: "zero amount", from: "1111111111", to: "2222222222", amount: 0, wantErr: models.ErrInvalidInput},
		{name: "negative amount", from: "1111111111", to: "2222222222", amount: -50, wantErr: models.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			seedAccount(t, store, "1111111111", 5000, true)
			seedAccount(t, store, "2222222222", 1000, false)
			svc := newTransferService(store)

			_, err := svc.Transfer(context.Background(), tt.from, tt.to, tt.amount, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Transfer error = %v, want %v", err, tt.wantErr)
			}

			// No partial mutation is observable after any failure.
			if got := balanceOf(t, store, "1111111111"); got != 5000 {
				t.Errorf("sender balance mutated: %d", got)
			}
			if got := balanceOf(t, store, "2222222222"); got != 1000 {
				t.Errorf("recipient balance mutated: %d", got)
			}
			entries, _ := store.LedgerForAccount(context.Background(), "1111111111", 10)
			if len(entries) != 0 {
				t.Errorf("ledger has %d entries after failed transfer", len(entries))
			}
		})
	}
}

// failingStore wraps a real store and makes the ledger append inside a unit
// of work fail after the balance updates have been applied.
type failingStore struct {
	repository.Store
	appendErr error
}

func (f *failingStore) Transact(ctx context.Context, fn func(tx repository.Tx) error) error {
	return f.Store.Transact(ctx, func(tx repository.Tx) error {
		return fn(&failingTx{Tx: tx, appendErr: f.appendErr})
	})
}

type failingTx struct {
	repository.Tx
	appendErr error
}

func (f *failingTx) AppendLedger(ctx context.Context, entry *models.LedgerEntry) error {
	return f.appendErr
}

func TestTransferRollsBackWhenLedgerAppendFails(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "1111111111", 5000, true)
	seedAccount(t, store, "2222222222", 0, false)
	svc := newTransferService(&failingStore{Store: store, appendErr: errors.New("disk full")})

	_, err := svc.Transfer(context.Background(), "1111111111", "2222222222", 2000, "")
	if err == nil {
		t.Fatal("Transfer succeeded despite failing ledger append")
	}

	if got := balanceOf(t, store, "1111111111"); got != 5000 {
		t.Errorf("sender balance = %d after rollback, want 5000", got)
	}
	if got := balanceOf(t, store, "2222222222"); got != 0 {
		t.Errorf("recipient balance = %d after rollback, want 0", got)
	}
	entries, _ := store.LedgerForAccount(context.Background(), "1111111111", 10)
	if len(entries) != 0 {
		t.Errorf("ledger has %d entries after rollback", len(entries))
	}
}

func TestConservationAcrossOperations(t *testing.T) {
	store := memory.NewStore()
	collector := metrics.NewCollector()
	transfers := NewTransferService(store, collector, zap.NewNop())
	admin := NewAdminService(store, collector, zap.NewNop())

	numbers := []string{"1111111111", "2222222222", "3333333333"}
	for _, n := range numbers {
		seedAccount(t, store, n, 0, true)
	}

	var deposited int64
	deposits := []struct {
		account string
		amount  int64
	}{
		{"1111111111", 10000},
		{"2222222222", 2500},
		{"1111111111", 750},
	}
	for _, d := range deposits {
		if _, err := admin.Deposit(context.Background(), d.account, d.amount); err != nil {
			t.Fatalf("Deposit(%s, %d): %v", d.account, d.amount, err)
		}
		deposited += d.amount
	}

	moves := []struct {
		from, to string
		amount   int64
	}{
		{"1111111111", "2222222222", 4000},
		{"2222222222", "3333333333", 1500},
		{"3333333333", "1111111111", 500},
	}
	for _, m := range moves {
		if _, err := transfers.Transfer(context.Background(), m.from, m.to, m.amount, ""); err != nil {
			t.Fatalf("Transfer(%s -> %s, %d): %v", m.from, m.to, m.amount, err)
		}
	}

	var total int64
	for _, n := range numbers {
		total += balanceOf(t, store, n)
	}
	if total != deposited {
		t.Errorf("total balance = %d, want %d (transfers must net to zero)", total, deposited)
	}
}

// Covers the full register -> deposit -> authorize -> transfer walk-through.
func TestDepositAuthorizeTransferFlow(t *testing.T) {
	store := memory.NewStore()
	collector := metrics.NewCollector()
	accounts := NewAccountService(store, zap.NewNop())
	admin := NewAdminService(store, collector, zap.NewNop())
	transfers := NewTransferService(store, collector, zap.NewNop())

	ann, err := accounts.Register(context.Background(), "Ann", "ann@x.com", "hunter22pass")
	if err != nil {
		t.Fatalf("register Ann: %v", err)
	}
	if ann.BalanceCents != 0 || ann.IsAuthorized {
		t.Fatalf("new account not zeroed/unauthorized: %+v", ann)
	}

	if _, err := admin.Deposit(context.Background(), ann.AccountNumber, 5000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if got := balanceOf(t, store, ann.AccountNumber); got != 5000 {
		t.Fatalf("Ann balance = %d, want 5000", got)
	}

	if _, err := admin.SetAuthorization(context.Background(), ann.AccountNumber, true); err != nil {
		t.Fatalf("authorize: %v", err)
	}

	bo, err := accounts.Register(context.Background(), "Bo", "bo@x.com", "hunter22pass")
	if err != nil {
		t.Fatalf("register Bo: %v", err)
	}

	if _, err := transfers.Transfer(context.Background(), ann.AccountNumber, bo.AccountNumber, 2000, "gift"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := balanceOf(t, store, ann.AccountNumber); got != 3000 {
		t.Errorf("Ann balance = %d, want 3000", got)
	}
	if got := balanceOf(t, store, bo.AccountNumber); got != 2000 {
		t.Errorf("Bo balance = %d, want 2000", got)
	}

	entries, err := transfers.ListForAccount(context.Background(), ann.AccountNumber, 0)
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Ann's ledger has %d entries, want 2", len(entries))
	}
	// Newest first: the transfer, then the deposit.
	if entries[0].Type != models.EntryTypeTransfer || entries[1].Type != models.EntryTypeDeposit {
		t.Errorf("unexpected ledger order: %s then %s", entries[0].Type, entries[1].Type)
	}
	if entries[1].FromAccount != "" {
		t.Errorf("deposit entry has sender %q, want system sentinel", entries[1].FromAccount)
	}
}

func TestListForAccountClampsLimit(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "1111111111", 0, true)
	svc := newTransferService(store)

	for _, limit := range []int{-1, 0, models.DefaultLedgerLimit + 1} {
		if _, err := svc.ListForAccount(context.Background(), "1111111111", limit); err != nil {
			t.Errorf("ListForAccount(limit=%d): %v", limit, err)
		}
	}
}
