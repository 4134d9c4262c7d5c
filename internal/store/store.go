// Package store persists book graphs through the flat-record contract of the
// ledger entities. Collections are never serialized inline: saving dumps each
// entity to its record, loading re-registers every entity into a freshly
// built graph.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/contador-app/contador/internal/ledger"
)

// Store saves and loads whole book graphs. Loading an unknown book id fails
// with ledger.ErrNotFound.
type Store interface {
	SaveBook(ctx context.Context, book *ledger.Book) error
	LoadBook(ctx context.Context, id uuid.UUID) (*ledger.Book, error)
}

// link ties a document to one of its settling transactions.
type link struct {
	DocumentID    uuid.UUID
	TransactionID uuid.UUID
}

// graph is the flat-record form of one book and everything reachable from
// it. Slices keep dump order so collections rebuild in their original
// insertion order.
type graph struct {
	Book         ledger.Record
	Payees       []ledger.Record
	Accounts     []ledger.Record
	Transactions []ledger.Record
	Entries      []ledger.Record
	Documents    []ledger.Record
	Links        []link
}

// dumpGraph flattens a book: accounts and transactions from the book's
// collections, entries through their accounts, documents and payees through
// the transactions that reference them.
func dumpGraph(b *ledger.Book) *graph {
	g := &graph{Book: b.Dump()}

	payeeSeen := make(map[uuid.UUID]bool)
	addPayee := func(p *ledger.Payee) {
		if p == nil || payeeSeen[p.ID] {
			return
		}
		payeeSeen[p.ID] = true
		g.Payees = append(g.Payees, p.Dump())
	}

	for _, a := range b.Accounts() {
		g.Accounts = append(g.Accounts, a.Dump())
		for _, e := range a.Entries() {
			g.Entries = append(g.Entries, e.Dump())
		}
	}

	docSeen := make(map[uuid.UUID]bool)
	for _, t := range b.Transactions() {
		addPayee(t.Payee)
		g.Transactions = append(g.Transactions, t.Dump())
		for _, d := range t.Documents() {
			if !docSeen[d.ID] {
				docSeen[d.ID] = true
				addPayee(d.Payee)
				g.Documents = append(g.Documents, d.Dump())
			}
			g.Links = append(g.Links, link{DocumentID: d.ID, TransactionID: t.ID})
		}
	}

	return g
}

// buildGraph reconstructs a book graph from records, re-registering every
// entity and re-validating each transaction once its entries are back in
// place.
func buildGraph(g *graph) (*ledger.Book, error) {
	book, err := ledger.BookFromRecord(g.Book)
	if err != nil {
		return nil, fmt.Errorf("buildGraph: %w", err)
	}

	payees := make(map[string]*ledger.Payee, len(g.Payees))
	for _, r := range g.Payees {
		p, err := ledger.PayeeFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("buildGraph: %w", err)
		}
		payees[p.ID.String()] = p
	}

	accounts := make(map[string]*ledger.Account, len(g.Accounts))
	for _, r := range g.Accounts {
		a, err := ledger.AccountFromRecord(r, book)
		if err != nil {
			return nil, fmt.Errorf("buildGraph: %w", err)
		}
		accounts[a.ID.String()] = a
	}

	transactions := make(map[string]*ledger.Transaction, len(g.Transactions))
	for _, r := range g.Transactions {
		t, err := ledger.TransactionFromRecord(r, book, payees[r["payee"]])
		if err != nil {
			return nil, fmt.Errorf("buildGraph: %w", err)
		}
		transactions[t.ID.String()] = t
	}

	for _, r := range g.Entries {
		account, ok := accounts[r["account"]]
		if !ok {
			return nil, fmt.Errorf("buildGraph: entry account %q: %w", r["account"], ledger.ErrNotFound)
		}
		var tx *ledger.Transaction
		if ref, posted := r["transaction"]; posted {
			if tx, ok = transactions[ref]; !ok {
				return nil, fmt.Errorf("buildGraph: entry transaction %q: %w", ref, ledger.ErrNotFound)
			}
		}
		if _, err := ledger.EntryFromRecord(r, account, tx); err != nil {
			return nil, fmt.Errorf("buildGraph: %w", err)
		}
	}

	for _, t := range book.Transactions() {
		if err := t.ValidateEntries(); err != nil {
			return nil, fmt.Errorf("buildGraph: transaction %s: %w", t.ID, err)
		}
	}

	documents := make(map[string]*ledger.Document, len(g.Documents))
	for _, r := range g.Documents {
		d, err := ledger.DocumentFromRecord(r, book, payees[r["payee"]])
		if err != nil {
			return nil, fmt.Errorf("buildGraph: %w", err)
		}
		documents[d.ID.String()] = d
	}

	for _, l := range g.Links {
		doc, ok := documents[l.DocumentID.String()]
		if !ok {
			return nil, fmt.Errorf("buildGraph: link document %s: %w", l.DocumentID, ledger.ErrNotFound)
		}
		tx, ok := transactions[l.TransactionID.String()]
		if !ok {
			return nil, fmt.Errorf("buildGraph: link transaction %s: %w", l.TransactionID, ledger.ErrNotFound)
		}
		tx.LinkDocument(doc)
	}

	return book, nil
}
