package models

import "time"

// Ledger entry types. The ledger is append-only; entries are never updated or
// deleted once written.
const (
	EntryTypeDeposit  = "deposit"
	EntryTypeTransfer = "transfer"
)

// DefaultLedgerLimit bounds ledger listings for a single account.
const DefaultLedgerLimit = 200

type Account struct {
	ID            int64     `json:"-"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	AccountNumber string    `json:"accountNumber"`
	BalanceCents  int64     `json:"balanceCents"`
	IsAuthorized  bool      `json:"isAuthorized"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdTimestamp"`
}

// LedgerEntry records a single balance-affecting event. FromAccount is empty
// for system-originated deposits and stored as NULL.
type LedgerEntry struct {
	ID          string    `json:"id"`
	FromAccount string    `json:"fromAccount,omitempty"`
	ToAccount   string    `json:"toAccount"`
	AmountCents int64     `json:"amountCents"`
	Type        string    `json:"type"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdTimestamp"`
}

type SupportMessage struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdTimestamp"`
}
