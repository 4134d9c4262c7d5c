package books

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contador-app/contador/internal/ledger"
	"github.com/contador-app/contador/internal/logging"
)

// Manager exposes the business operations of one book. Every operation
// produces exactly one balanced transaction. Operations are serialized per
// book, so a Manager is safe for concurrent use; direct mutation of the
// underlying primitives is not covered by this lock.
type Manager struct {
	mu    sync.Mutex
	book  *ledger.Book
	chart *Chart
}

func NewManager(book *ledger.Book) *Manager {
	return &Manager{
		book:  book,
		chart: NewChart(book),
	}
}

func (m *Manager) Book() *ledger.Book { return m.book }

func (m *Manager) Chart() *Chart { return m.chart }

// PutExpense records amount as an expense sourced from account: credit the
// account, debit Expenses. Both entries are returned unposted.
func (m *Manager) PutExpense(account *ledger.Account, amount decimal.Decimal) (*ledger.Entry, *ledger.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.putExpense(account, amount)
}

// GetRevenue records amount as revenue landing in account: credit Revenue,
// debit the account. Both entries are returned unposted.
func (m *Manager) GetRevenue(account *ledger.Account, amount decimal.Decimal) (*ledger.Entry, *ledger.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getRevenue(account, amount)
}

func (m *Manager) putExpense(payable *ledger.Account, amount decimal.Decimal) (*ledger.Entry, *ledger.Entry) {
	credit := payable.Credit(amount)
	debit := m.chart.Expenses().Debit(amount)
	return credit, debit
}

func (m *Manager) getRevenue(receivable *ledger.Account, amount decimal.Decimal) (*ledger.Entry, *ledger.Entry) {
	credit := m.chart.Revenue().Credit(amount)
	debit := receivable.Debit(amount)
	return credit, debit
}

// AddExpenseInvoice records a payable: an expense invoice document plus a
// transaction crediting Accounts Payable and debiting Expenses. payee may be
// nil.
func (m *Manager) AddExpenseInvoice(ctx context.Context, date time.Time, number string, amount decimal.Decimal, invoiceURL string, payee *ledger.Payee) (*ledger.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	invoice := ledger.NewDocument(m.book, date, number, ledger.DocumentTypeExpenseInvoice, amount, decimal.Zero, payee, invoiceURL)
	tx := m.book.CreateTransaction(date, fmt.Sprintf("Invoice %s", number), payee)

	credit, debit := m.putExpense(m.chart.AccountsPayable(), amount)
	if err := tx.AddEntries(credit, debit); err != nil {
		return nil, fmt.Errorf("AddExpenseInvoice: %w", err)
	}
	tx.LinkDocument(invoice)

	logging.FromContext(ctx).Info("expense invoice recorded",
		"invoice_id", invoice.ID,
		"number", number,
		"amount", amount,
	)
	return invoice, nil
}

// PayInvoices settles one or more invoices for amount out of the bank
// account, linking every invoice to the settling transaction.
func (m *Manager) PayInvoices(ctx context.Context, invoices []*ledger.Document, date time.Time, amount decimal.Decimal) (*ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.book.CreateTransaction(date, "Payment for invoices", nil)

	credit := m.chart.BankAccount().Credit(amount)
	debit := m.chart.AccountsPayable().Debit(amount)
	if err := tx.AddEntries(credit, debit); err != nil {
		return nil, fmt.Errorf("PayInvoices: %w", err)
	}
	for _, invoice := range invoices {
		tx.LinkDocument(invoice)
	}

	logging.FromContext(ctx).Info("invoices paid",
		"transaction_id", tx.ID,
		"invoices", len(invoices),
		"amount", amount,
	)
	return tx, nil
}

// RegisterSalary accrues a salary obligation on the Salaries account.
func (m *Manager) RegisterSalary(ctx context.Context, date time.Time, amount decimal.Decimal, payee *ledger.Payee) (*ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.book.CreateTransaction(date, fmt.Sprintf("Salary for %s", payee.Name), payee)

	credit, debit := m.putExpense(m.chart.Salaries(), amount)
	if err := tx.AddEntries(credit, debit); err != nil {
		return nil, fmt.Errorf("RegisterSalary: %w", err)
	}

	logging.FromContext(ctx).Info("salary registered",
		"transaction_id", tx.ID,
		"payee", payee.Name,
		"amount", amount,
	)
	return tx, nil
}

// PaySalary settles a salary net of withheld tax. The bank account is
// credited the net amount, the retention (when nonzero) becomes a liability
// on the Taxes account, and Salaries is debited the gross.
func (m *Manager) PaySalary(ctx context.Context, date time.Time, amount decimal.Decimal, payee *ledger.Payee, taxRetention decimal.Decimal) (*ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.book.CreateTransaction(date, fmt.Sprintf("Salary payment to %s", payee.Name), payee)

	entries := []*ledger.Entry{m.chart.BankAccount().Credit(amount)}
	if !taxRetention.IsZero() {
		entries = append(entries, m.chart.Taxes().Credit(taxRetention))
	}
	entries = append(entries, m.chart.Salaries().Debit(amount.Add(taxRetention)))
	if err := tx.AddEntries(entries...); err != nil {
		return nil, fmt.Errorf("PaySalary: %w", err)
	}

	logging.FromContext(ctx).Info("salary paid",
		"transaction_id", tx.ID,
		"payee", payee.Name,
		"amount", amount,
		"tax_retention", taxRetention,
	)
	return tx, nil
}

// AddSaleInvoice records a receivable inclusive of tax: a sale invoice
// document plus a transaction moving amount from Revenue into Accounts
// Receivable, and taxAmount (when nonzero) from Taxes into Accounts
// Receivable.
func (m *Manager) AddSaleInvoice(ctx context.Context, date time.Time, number string, amount decimal.Decimal, invoiceURL string, payee *ledger.Payee, taxAmount decimal.Decimal) (*ledger.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	invoice := ledger.NewDocument(m.book, date, number, ledger.DocumentTypeSaleInvoice, amount, taxAmount, payee, invoiceURL)
	tx := m.book.CreateTransaction(date, fmt.Sprintf("Invoice %s", number), payee)

	credit, debit := m.getRevenue(m.chart.AccountsReceivable(), amount)
	if err := tx.AddEntries(credit, debit); err != nil {
		return nil, fmt.Errorf("AddSaleInvoice: %w", err)
	}
	if !taxAmount.IsZero() {
		taxCredit := m.chart.Taxes().Credit(taxAmount)
		taxDebit := m.chart.AccountsReceivable().Debit(taxAmount)
		if err := tx.AddEntries(taxDebit, taxCredit); err != nil {
			return nil, fmt.Errorf("AddSaleInvoice: %w", err)
		}
	}
	tx.LinkDocument(invoice)

	logging.FromContext(ctx).Info("sale invoice recorded",
		"invoice_id", invoice.ID,
		"number", number,
		"amount", amount,
		"tax_amount", taxAmount,
	)
	return invoice, nil
}

// ReceivePayment settles one or more sale invoices for amount into the bank
// account, linking every invoice to the settling transaction.
func (m *Manager) ReceivePayment(ctx context.Context, invoices []*ledger.Document, date time.Time, amount decimal.Decimal) (*ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.book.CreateTransaction(date, "Payment for invoices", nil)

	debit := m.chart.BankAccount().Debit(amount)
	credit := m.chart.AccountsReceivable().Credit(amount)
	if err := tx.AddEntries(debit, credit); err != nil {
		return nil, fmt.Errorf("ReceivePayment: %w", err)
	}
	for _, invoice := range invoices {
		tx.LinkDocument(invoice)
	}

	logging.FromContext(ctx).Info("payment received",
		"transaction_id", tx.ID,
		"invoices", len(invoices),
		"amount", amount,
	)
	return tx, nil
}

// PayTaxes settles accumulated tax liability out of the bank account.
func (m *Manager) PayTaxes(ctx context.Context, date time.Time, amount decimal.Decimal) (*ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.book.CreateTransaction(date, "Payment for taxes", nil)

	credit := m.chart.BankAccount().Credit(amount)
	debit := m.chart.Taxes().Debit(amount)
	if err := tx.AddEntries(credit, debit); err != nil {
		return nil, fmt.Errorf("PayTaxes: %w", err)
	}

	logging.FromContext(ctx).Info("taxes paid",
		"transaction_id", tx.ID,
		"amount", amount,
	)
	return tx, nil
}

// IsInvoiceClear derives whether every obligation tied to invoice has been
// settled, by scanning the entries of its linked transactions. The invoice is
// not clear while its Accounts Payable entries sum to a negative total or its
// Accounts Receivable entries sum to a positive one. The check is sign based,
// so an overpayment also reads as clear.
func (m *Manager) IsInvoiceClear(invoice *ledger.Document) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	payable := decimal.Zero
	receivable := decimal.Zero
	for _, tx := range invoice.Transactions() {
		for _, e := range tx.Entries() {
			switch e.Account() {
			case m.chart.AccountsPayable():
				payable = payable.Add(e.Amount())
			case m.chart.AccountsReceivable():
				receivable = receivable.Add(e.Amount())
			}
		}
	}

	if payable.IsNegative() {
		return false
	}
	if receivable.IsPositive() {
		return false
	}
	return true
}
