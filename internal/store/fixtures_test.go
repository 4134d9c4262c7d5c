package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contador-app/contador/internal/books"
	"github.com/contador-app/contador/internal/ledger"
)

// seedBook builds a book with one settled expense invoice, one open sale
// invoice and one salary payment, all through the business layer.
func seedBook(t *testing.T) (*ledger.Book, *books.Manager) {
	t.Helper()
	ctx := context.Background()

	book := ledger.NewBook("Seed Book", "2026")
	m := books.NewManager(book)
	m.Chart().BankAccount().InitialBalance = decimal.RequireFromString("1000.00")

	expense, err := m.AddExpenseInvoice(ctx, testDate, "00001",
		decimal.RequireFromString("100.00"), "//invoice1", ledger.NewPayee("Vendor 1"))
	require.NoError(t, err)
	_, err = m.PayInvoices(ctx, []*ledger.Document{expense}, testDate, decimal.RequireFromString("100.00"))
	require.NoError(t, err)

	_, err = m.AddSaleInvoice(ctx, testDate, "00002",
		decimal.RequireFromString("500.00"), "//sale1", ledger.NewPayee("Customer 1"),
		decimal.RequireFromString("65.00"))
	require.NoError(t, err)

	_, err = m.PaySalary(ctx, testDate, decimal.RequireFromString("315.00"),
		ledger.NewPayee("Employee 1"), decimal.RequireFromString("35.00"))
	require.NoError(t, err)

	return book, m
}

// verifyRestoredBook checks that a reloaded graph matches the book built by
// seedBook: identities, balances, links and the derived clearing status.
func verifyRestoredBook(t *testing.T, original *ledger.Book, restored *ledger.Book) {
	t.Helper()

	require.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Period, restored.Period)

	origAccounts := original.Accounts()
	restAccounts := restored.Accounts()
	require.Len(t, restAccounts, len(origAccounts))
	for i, orig := range origAccounts {
		got := restAccounts[i]
		assert.Equal(t, orig.ID, got.ID)
		assert.Equal(t, orig.Name, got.Name)
		assert.True(t, orig.InitialBalance.Equal(got.InitialBalance),
			"%s initial balance: got %s, want %s", orig.Name, got.InitialBalance, orig.InitialBalance)
		assert.True(t, orig.Balance().Equal(got.Balance()),
			"%s balance: got %s, want %s", orig.Name, got.Balance(), orig.Balance())
		assert.Len(t, got.Entries(), len(orig.Entries()))
	}

	origTxs := original.Transactions()
	restTxs := restored.Transactions()
	require.Len(t, restTxs, len(origTxs))
	for i, orig := range origTxs {
		got := restTxs[i]
		assert.Equal(t, orig.ID, got.ID)
		assert.Equal(t, orig.Description, got.Description)
		assert.True(t, orig.Date.Equal(got.Date))
		assert.Len(t, got.Entries(), len(orig.Entries()))
		assert.Len(t, got.Documents(), len(orig.Documents()))
		if orig.Payee != nil {
			require.NotNil(t, got.Payee)
			assert.Equal(t, orig.Payee.ID, got.Payee.ID)
			assert.Equal(t, orig.Payee.Name, got.Payee.Name)
		}
		require.NoError(t, got.ValidateEntries())
	}

	// the chart binds the restored accounts by name, so a manager over the
	// restored book derives the same clearing status
	m := books.NewManager(restored)
	assert.Len(t, restored.Accounts(), len(origAccounts), "chart must not duplicate restored accounts")
	for _, tx := range restTxs {
		for _, doc := range tx.Documents() {
			switch doc.Number {
			case "00001":
				assert.True(t, m.IsInvoiceClear(doc), "paid expense invoice must be clear")
			case "00002":
				assert.False(t, m.IsInvoiceClear(doc), "open sale invoice must not be clear")
			}
		}
	}
}
