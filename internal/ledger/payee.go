package ledger

import "github.com/google/uuid"

// Payee is a counterparty referenced by transactions and documents. It is
// never owned by a book.
type Payee struct {
	ID   uuid.UUID
	Name string
}

func NewPayee(name string) *Payee {
	return &Payee{ID: uuid.New(), Name: name}
}

func (p *Payee) EntityID() uuid.UUID { return p.ID }
