package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is a single signed monetary movement against one account. The amount
// and owning account are fixed at creation; the transaction reference is set
// exactly once, when the entry is posted. Entries are created only through
// Account.Credit and Account.Debit.
type Entry struct {
	ID uuid.UUID

	amount      decimal.Decimal
	account     *Account
	transaction *Transaction
}

func (e *Entry) EntityID() uuid.UUID { return e.ID }

func (e *Entry) Amount() decimal.Decimal { return e.amount }

func (e *Entry) Account() *Account { return e.account }

// Transaction returns the transaction the entry is posted to, or nil while
// the entry is unposted.
func (e *Entry) Transaction() *Transaction { return e.transaction }

// Posted reports whether the entry has been attached to a transaction.
func (e *Entry) Posted() bool { return e.transaction != nil }
