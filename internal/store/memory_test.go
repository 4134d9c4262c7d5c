package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contador-app/contador/internal/ledger"
)

var testDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	book, _ := seedBook(t)
	require.NoError(t, s.SaveBook(ctx, book))

	restored, err := s.LoadBook(ctx, book.ID)
	require.NoError(t, err)
	verifyRestoredBook(t, book, restored)
}

func TestMemoryLoadUnknownBook(t *testing.T) {
	s := NewMemory()
	_, err := s.LoadBook(context.Background(), uuid.New())
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestMemorySnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	book := ledger.NewBook("Isolated", "2026")
	bank := book.CreateAccount("Bank Account", decimal.Zero)
	require.NoError(t, s.SaveBook(ctx, book))

	// mutations after save must not leak into the stored snapshot
	bank.Debit(decimal.NewFromInt(500))
	book.CreateAccount("Expenses", decimal.Zero)

	restored, err := s.LoadBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, restored.Accounts(), 1)
	assert.True(t, restored.Accounts()[0].Balance().IsZero())
}

func TestMemorySaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	book := ledger.NewBook("Overwrite", "2026")
	require.NoError(t, s.SaveBook(ctx, book))

	book.CreateAccount("Assets", decimal.RequireFromString("42.00"))
	require.NoError(t, s.SaveBook(ctx, book))

	restored, err := s.LoadBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, restored.Accounts(), 1)
	assert.Equal(t, "Assets", restored.Accounts()[0].Name)
}
