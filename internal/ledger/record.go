package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is the flat field-name to value mapping exchanged with the
// persistence collaborator. Monetary values are exact decimal strings, ids
// are uuid strings and dates are RFC 3339. Owned collections are never part
// of a record; they are rebuilt by re-registering each entity on load.
// References to other entities dump as their id and are resolved by the
// caller, which passes the constructed entity back into the *FromRecord
// function.
type Record map[string]string

const recordTimeFormat = time.RFC3339Nano

func (b *Book) Dump() Record {
	return Record{
		"id":     b.ID.String(),
		"name":   b.Name,
		"period": b.Period,
	}
}

func BookFromRecord(r Record) (*Book, error) {
	id, err := recordID(r, "id")
	if err != nil {
		return nil, fmt.Errorf("BookFromRecord: %w", err)
	}
	name, err := recordString(r, "name")
	if err != nil {
		return nil, fmt.Errorf("BookFromRecord: %w", err)
	}
	return &Book{
		ID:     id,
		Name:   name,
		Period: r["period"],
	}, nil
}

func (p *Payee) Dump() Record {
	return Record{
		"id":   p.ID.String(),
		"name": p.Name,
	}
}

func PayeeFromRecord(r Record) (*Payee, error) {
	id, err := recordID(r, "id")
	if err != nil {
		return nil, fmt.Errorf("PayeeFromRecord: %w", err)
	}
	name, err := recordString(r, "name")
	if err != nil {
		return nil, fmt.Errorf("PayeeFromRecord: %w", err)
	}
	return &Payee{ID: id, Name: name}, nil
}

func (a *Account) Dump() Record {
	r := Record{
		"id":              a.ID.String(),
		"name":            a.Name,
		"initial_balance": a.InitialBalance.String(),
	}
	if a.book != nil {
		r["book"] = a.book.ID.String()
	}
	return r
}

// AccountFromRecord rebuilds an account from a record. If book is non-nil
// the account is registered into it.
func AccountFromRecord(r Record, book *Book) (*Account, error) {
	id, err := recordID(r, "id")
	if err != nil {
		return nil, fmt.Errorf("AccountFromRecord: %w", err)
	}
	name, err := recordString(r, "name")
	if err != nil {
		return nil, fmt.Errorf("AccountFromRecord: %w", err)
	}
	initial, err := recordDecimal(r, "initial_balance")
	if err != nil {
		return nil, fmt.Errorf("AccountFromRecord: %w", err)
	}
	a := &Account{
		ID:             id,
		Name:           name,
		InitialBalance: initial,
	}
	if book != nil {
		book.addAccount(a)
	}
	return a, nil
}

func (t *Transaction) Dump() Record {
	r := Record{
		"id":          t.ID.String(),
		"date":        t.Date.Format(recordTimeFormat),
		"description": t.Description,
	}
	if t.Payee != nil {
		r["payee"] = t.Payee.ID.String()
	}
	if t.book != nil {
		r["book"] = t.book.ID.String()
	}
	return r
}

// TransactionFromRecord rebuilds a transaction from a record. If book is
// non-nil the transaction is registered into it. Entries and document links
// are rebuilt separately, through EntryFromRecord and LinkDocument.
func TransactionFromRecord(r Record, book *Book, payee *Payee) (*Transaction, error) {
	id, err := recordID(r, "id")
	if err != nil {
		return nil, fmt.Errorf("TransactionFromRecord: %w", err)
	}
	date, err := recordTime(r, "date")
	if err != nil {
		return nil, fmt.Errorf("TransactionFromRecord: %w", err)
	}
	description, err := recordString(r, "description")
	if err != nil {
		return nil, fmt.Errorf("TransactionFromRecord: %w", err)
	}
	t := &Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Payee:       payee,
	}
	if book != nil {
		book.addTransaction(t)
	}
	return t, nil
}

func (d *Document) Dump() Record {
	r := Record{
		"id":         d.ID.String(),
		"date":       d.Date.Format(recordTimeFormat),
		"number":     d.Number,
		"type":       d.Type,
		"amount":     d.Amount.String(),
		"tax_amount": d.TaxAmount.String(),
	}
	if d.Payee != nil {
		r["payee"] = d.Payee.ID.String()
	}
	if d.Location != "" {
		r["location"] = d.Location
	}
	if d.book != nil {
		r["book"] = d.book.ID.String()
	}
	return r
}

func DocumentFromRecord(r Record, book *Book, payee *Payee) (*Document, error) {
	id, err := recordID(r, "id")
	if err != nil {
		return nil, fmt.Errorf("DocumentFromRecord: %w", err)
	}
	date, err := recordTime(r, "date")
	if err != nil {
		return nil, fmt.Errorf("DocumentFromRecord: %w", err)
	}
	number, err := recordString(r, "number")
	if err != nil {
		return nil, fmt.Errorf("DocumentFromRecord: %w", err)
	}
	docType, err := recordString(r, "type")
	if err != nil {
		return nil, fmt.Errorf("DocumentFromRecord: %w", err)
	}
	amount, err := recordDecimal(r, "amount")
	if err != nil {
		return nil, fmt.Errorf("DocumentFromRecord: %w", err)
	}
	taxAmount, err := recordDecimal(r, "tax_amount")
	if err != nil {
		return nil, fmt.Errorf("DocumentFromRecord: %w", err)
	}
	return &Document{
		ID:        id,
		Date:      date,
		Number:    number,
		Type:      docType,
		Amount:    amount,
		TaxAmount: taxAmount,
		Payee:     payee,
		Location:  r["location"],
		book:      book,
	}, nil
}

func (e *Entry) Dump() Record {
	r := Record{
		"id":      e.ID.String(),
		"amount":  e.amount.String(),
		"account": e.account.ID.String(),
	}
	if e.transaction != nil {
		r["transaction"] = e.transaction.ID.String()
	}
	return r
}

// EntryFromRecord rebuilds an entry into account, and posts it to tx when
// non-nil. Posting here skips the zero-sum check so a graph can be rebuilt
// entry by entry; the loader is expected to call ValidateEntries on each
// transaction once the graph is complete.
func EntryFromRecord(r Record, account *Account, tx *Transaction) (*Entry, error) {
	id, err := recordID(r, "id")
	if err != nil {
		return nil, fmt.Errorf("EntryFromRecord: %w", err)
	}
	amount, err := recordDecimal(r, "amount")
	if err != nil {
		return nil, fmt.Errorf("EntryFromRecord: %w", err)
	}
	e := &Entry{
		ID:      id,
		amount:  amount,
		account: account,
	}
	account.entries.Add(e)
	if tx != nil {
		tx.entries.Add(e)
		e.transaction = tx
	}
	return e, nil
}

func recordString(r Record, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%q: %w", key, ErrMissingField)
	}
	return v, nil
}

func recordID(r Record, key string) (uuid.UUID, error) {
	v, err := recordString(r, key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q: %w", key, err)
	}
	return id, nil
}

func recordDecimal(r Record, key string) (decimal.Decimal, error) {
	v, err := recordString(r, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q: %w", key, err)
	}
	return d, nil
}

func recordTime(r Record, key string) (time.Time, error) {
	v, err := recordString(r, key)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := time.Parse(recordTimeFormat, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", key, err)
	}
	return ts, nil
}
