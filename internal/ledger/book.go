package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book owns the accounts and transactions of one accounting period.
// Ownership is exclusive: an Account or Transaction belongs to at most one
// Book, and entities are registered through the Create* factories rather than
// as a constructor side effect.
type Book struct {
	ID     uuid.UUID
	Name   string
	Period string

	mu           sync.Mutex
	accounts     Collection[*Account]
	transactions Collection[*Transaction]
}

func NewBook(name, period string) *Book {
	return &Book{
		ID:     uuid.New(),
		Name:   name,
		Period: period,
	}
}

func (b *Book) EntityID() uuid.UUID { return b.ID }

// CreateAccount builds a new Account and registers it into the book.
func (b *Book) CreateAccount(name string, initialBalance decimal.Decimal) *Account {
	a := NewAccount(name, initialBalance)
	b.addAccount(a)
	return a
}

// CreateTransaction builds a new Transaction and registers it into the book.
// payee may be nil.
func (b *Book) CreateTransaction(date time.Time, description string, payee *Payee) *Transaction {
	t := NewTransaction(date, description, payee)
	b.addTransaction(t)
	return t
}

func (b *Book) addAccount(a *Account) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts.Add(a)
	a.book = b
}

func (b *Book) addTransaction(t *Transaction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transactions.Add(t)
	t.book = b
}

// Accounts returns the book's accounts in registration order.
func (b *Book) Accounts() []*Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts.All()
}

// Transactions returns the book's transactions in registration order.
func (b *Book) Transactions() []*Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transactions.All()
}

func (b *Book) Account(id uuid.UUID) (*Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts.Get(id)
}

func (b *Book) Transaction(id uuid.UUID) (*Transaction, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transactions.Get(id)
}
