package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/contador-app/contador/internal/ledger"
)

// Memory keeps book graphs in process memory. Saved graphs are deep-copied
// on both save and load, so a stored graph never shares state with a live
// book.
type Memory struct {
	mu    sync.RWMutex
	books map[uuid.UUID]*graph
}

func NewMemory() *Memory {
	return &Memory{books: make(map[uuid.UUID]*graph)}
}

func (m *Memory) SaveBook(_ context.Context, book *ledger.Book) error {
	g := dumpGraph(book)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[book.ID] = copyGraph(g)
	return nil
}

func (m *Memory) LoadBook(_ context.Context, id uuid.UUID) (*ledger.Book, error) {
	m.mu.RLock()
	g, ok := m.books[id]
	if ok {
		g = copyGraph(g)
	}
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("LoadBook: book %s: %w", id, ledger.ErrNotFound)
	}
	book, err := buildGraph(g)
	if err != nil {
		return nil, fmt.Errorf("LoadBook: %w", err)
	}
	return book, nil
}

func copyGraph(g *graph) *graph {
	out := &graph{
		Book:  copyRecord(g.Book),
		Links: append([]link(nil), g.Links...),
	}
	out.Payees = copyRecords(g.Payees)
	out.Accounts = copyRecords(g.Accounts)
	out.Transactions = copyRecords(g.Transactions)
	out.Entries = copyRecords(g.Entries)
	out.Documents = copyRecords(g.Documents)
	return out
}

func copyRecords(rs []ledger.Record) []ledger.Record {
	if rs == nil {
		return nil
	}
	out := make([]ledger.Record, len(rs))
	for i, r := range rs {
		out[i] = copyRecord(r)
	}
	return out
}

func copyRecord(r ledger.Record) ledger.Record {
	out := make(ledger.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
