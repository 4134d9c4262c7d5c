package books

import (
	"github.com/shopspring/decimal"

	"github.com/contador-app/contador/internal/ledger"
)

// System account names every book carries.
const (
	AccountExpenses           = "Expenses"
	AccountRevenue            = "Revenue"
	AccountAssets             = "Assets"
	AccountLiabilities        = "Liabilities"
	AccountBankAccount        = "Bank Account"
	AccountSalaries           = "Salaries"
	AccountTaxes              = "Taxes"
	AccountAccountsPayable    = "Accounts Payable"
	AccountAccountsReceivable = "Accounts Receivable"
)

var chartAccountNames = []string{
	AccountExpenses,
	AccountRevenue,
	AccountAssets,
	AccountLiabilities,
	AccountBankAccount,
	AccountSalaries,
	AccountTaxes,
	AccountAccountsPayable,
	AccountAccountsReceivable,
}

// Chart guarantees that a book holds exactly one account per system account
// name. Accounts already present in the book (matched by name) are bound;
// missing ones are created with a zero initial balance. Building a Chart
// against the same book twice is idempotent.
type Chart struct {
	book     *ledger.Book
	accounts map[string]*ledger.Account
}

func NewChart(book *ledger.Book) *Chart {
	c := &Chart{
		book:     book,
		accounts: make(map[string]*ledger.Account, len(chartAccountNames)),
	}

	known := make(map[string]bool, len(chartAccountNames))
	for _, name := range chartAccountNames {
		known[name] = true
	}
	for _, a := range book.Accounts() {
		if known[a.Name] && c.accounts[a.Name] == nil {
			c.accounts[a.Name] = a
		}
	}
	for _, name := range chartAccountNames {
		if c.accounts[name] == nil {
			c.accounts[name] = book.CreateAccount(name, decimal.Zero)
		}
	}
	return c
}

func (c *Chart) Book() *ledger.Book { return c.book }

func (c *Chart) Expenses() *ledger.Account           { return c.accounts[AccountExpenses] }
func (c *Chart) Revenue() *ledger.Account            { return c.accounts[AccountRevenue] }
func (c *Chart) Assets() *ledger.Account             { return c.accounts[AccountAssets] }
func (c *Chart) Liabilities() *ledger.Account        { return c.accounts[AccountLiabilities] }
func (c *Chart) BankAccount() *ledger.Account        { return c.accounts[AccountBankAccount] }
func (c *Chart) Salaries() *ledger.Account           { return c.accounts[AccountSalaries] }
func (c *Chart) Taxes() *ledger.Account              { return c.accounts[AccountTaxes] }
func (c *Chart) AccountsPayable() *ledger.Account    { return c.accounts[AccountAccountsPayable] }
func (c *Chart) AccountsReceivable() *ledger.Account { return c.accounts[AccountAccountsReceivable] }
