package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCreditAndDebit(t *testing.T) {
	a := NewAccount("Bank Account", decimal.Zero)

	credit := a.Credit(decimal.NewFromInt(100))
	assert.True(t, credit.Amount().Equal(decimal.NewFromInt(-100)),
		"credit: got %s", credit.Amount())
	assert.Same(t, a, credit.Account())
	assert.False(t, credit.Posted())

	debit := a.Debit(decimal.NewFromInt(40))
	assert.True(t, debit.Amount().Equal(decimal.NewFromInt(40)),
		"debit: got %s", debit.Amount())

	entries := a.Entries()
	require.Len(t, entries, 2)
	assert.Same(t, credit, entries[0])
	assert.Same(t, debit, entries[1])
}

func TestAccountBalanceIsDerived(t *testing.T) {
	a := NewAccount("Bank Account", decimal.RequireFromString("1000.50"))
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("1000.50")))

	a.Credit(decimal.RequireFromString("300.25"))
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("700.25")),
		"after credit: got %s", a.Balance())

	a.Debit(decimal.RequireFromString("99.75"))
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("800.00")),
		"after debit: got %s", a.Balance())
}

func TestBookCreateAccountRegisters(t *testing.T) {
	book := NewBook("Test Book", "2026")

	a := book.CreateAccount("Assets", decimal.Zero)
	assert.Same(t, book, a.Book())

	got, ok := book.Account(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)
	require.Len(t, book.Accounts(), 1)
}

func TestUnattachedAccountHasNoBook(t *testing.T) {
	a := NewAccount("loose", decimal.Zero)
	assert.Nil(t, a.Book())
}
