package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a named bucket of value. Its balance is always derived from the
// initial balance plus the sum of its entries, never stored.
type Account struct {
	ID             uuid.UUID
	Name           string
	InitialBalance decimal.Decimal

	book    *Book
	entries Collection[*Entry]
}

// NewAccount builds an account that is not attached to any book. Use
// Book.CreateAccount to build and register in one call.
func NewAccount(name string, initialBalance decimal.Decimal) *Account {
	return &Account{
		ID:             uuid.New(),
		Name:           name,
		InitialBalance: initialBalance,
	}
}

func (a *Account) EntityID() uuid.UUID { return a.ID }

// Book returns the owning book, or nil for an unattached account.
func (a *Account) Book() *Book { return a.book }

// Entries returns the account's entries in creation order.
func (a *Account) Entries() []*Entry { return a.entries.All() }

// Balance is initial balance plus the sum of all entry amounts, posted or
// not. Recomputed on every read.
func (a *Account) Balance() decimal.Decimal {
	total := a.InitialBalance
	for _, e := range a.entries.All() {
		total = total.Add(e.amount)
	}
	return total
}

// Credit takes money out of the account: a new unposted entry for -amount.
func (a *Account) Credit(amount decimal.Decimal) *Entry {
	return a.addEntry(amount.Neg())
}

// Debit puts money into the account: a new unposted entry for +amount.
func (a *Account) Debit(amount decimal.Decimal) *Entry {
	return a.addEntry(amount)
}

func (a *Account) addEntry(amount decimal.Decimal) *Entry {
	e := &Entry{
		ID:      uuid.New(),
		amount:  amount,
		account: a,
	}
	a.entries.Add(e)
	return e
}
