package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an atomic, balanced group of entries representing one
// business event. Entries attached through AddEntries always sum to zero.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Payee       *Payee

	book      *Book
	entries   Collection[*Entry]
	documents Collection[*Document]
}

// NewTransaction builds a transaction that is not attached to any book. Use
// Book.CreateTransaction to build and register in one call.
func NewTransaction(date time.Time, description string, payee *Payee) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Payee:       payee,
	}
}

func (t *Transaction) EntityID() uuid.UUID { return t.ID }

// Book returns the owning book, or nil for an unattached transaction.
func (t *Transaction) Book() *Book { return t.book }

// Entries returns the posted entries in attachment order.
func (t *Transaction) Entries() []*Entry { return t.entries.All() }

// Documents returns the documents settled by this transaction.
func (t *Transaction) Documents() []*Document { return t.documents.All() }

// AddEntries posts entries to the transaction. The combined sum of already
// posted and proposed entries must be zero; on ErrUnbalancedTransaction
// neither the transaction nor the entries are modified. Each entry can be
// posted exactly once.
func (t *Transaction) AddEntries(entries ...*Entry) error {
	total := t.sum()
	for _, e := range entries {
		if e.transaction != nil {
			return fmt.Errorf("AddEntries: entry %s: %w", e.ID, ErrEntryPosted)
		}
		total = total.Add(e.amount)
	}
	if !total.IsZero() {
		return fmt.Errorf("AddEntries: total %s: %w", total, ErrUnbalancedTransaction)
	}
	for _, e := range entries {
		t.entries.Add(e)
		e.transaction = t
	}
	return nil
}

// ValidateEntries re-derives the sum of the currently posted entries and
// fails if it is nonzero.
func (t *Transaction) ValidateEntries() error {
	if total := t.sum(); !total.IsZero() {
		return fmt.Errorf("ValidateEntries: total %s: %w", total, ErrUnbalancedTransaction)
	}
	return nil
}

func (t *Transaction) sum() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.entries.All() {
		total = total.Add(e.amount)
	}
	return total
}

// LinkDocument records that this transaction settles doc, updating both
// sides of the relationship.
func (t *Transaction) LinkDocument(doc *Document) {
	t.documents.Add(doc)
	doc.transactions.Add(t)
}

// UnlinkDocument removes the link on both sides.
func (t *Transaction) UnlinkDocument(doc *Document) {
	t.documents.Remove(doc.ID)
	doc.transactions.Remove(t.ID)
}
