package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document types used by the business layer.
const (
	DocumentTypeExpenseInvoice = "expense invoice"
	DocumentTypeSaleInvoice    = "sale invoice"
)

// Document is an invoice-like record settled by one or more transactions.
// Amount and TaxAmount are fixed at creation; whether the document is clear
// is derived from the entries of its linked transactions, never stored here.
type Document struct {
	ID        uuid.UUID
	Date      time.Time
	Number    string
	Type      string
	Amount    decimal.Decimal
	TaxAmount decimal.Decimal
	Payee     *Payee
	Location  string

	book         *Book
	transactions Collection[*Transaction]
}

// NewDocument builds a document belonging to book. payee may be nil and
// location may be empty. Links to settling transactions are made afterwards
// with Transaction.LinkDocument.
func NewDocument(book *Book, date time.Time, number, docType string, amount, taxAmount decimal.Decimal, payee *Payee, location string) *Document {
	return &Document{
		ID:        uuid.New(),
		Date:      date,
		Number:    number,
		Type:      docType,
		Amount:    amount,
		TaxAmount: taxAmount,
		Payee:     payee,
		Location:  location,
		book:      book,
	}
}

func (d *Document) EntityID() uuid.UUID { return d.ID }

func (d *Document) Book() *Book { return d.book }

// Transactions returns the transactions linked to this document, in link
// order.
func (d *Document) Transactions() []*Transaction { return d.transactions.All() }
