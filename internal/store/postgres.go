package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/contador-app/contador/internal/config"
	"github.com/contador-app/contador/internal/ledger"
)

// Open connects to postgres with the pool settings from cfg.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeS) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeS) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open: ping: %w", err)
	}
	return db, nil
}

// Postgres persists book graphs across the tables created by migrations/.
// SaveBook replaces the stored graph wholesale inside one database
// transaction; LoadBook rebuilds the graph in its original insertion order.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) SaveBook(ctx context.Context, book *ledger.Book) error {
	g := dumpGraph(book)

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SaveBook: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, g.Book["id"]); err != nil {
		return fmt.Errorf("SaveBook: delete: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO books (id, name, period) VALUES ($1, $2, $3)`,
		g.Book["id"], g.Book["name"], g.Book["period"],
	); err != nil {
		return fmt.Errorf("SaveBook: book: %w", err)
	}

	for _, r := range g.Payees {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO payees (id, book_id, name) VALUES ($1, $2, $3)`,
			r["id"], g.Book["id"], r["name"],
		); err != nil {
			return fmt.Errorf("SaveBook: payee: %w", err)
		}
	}

	for i, r := range g.Accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, book_id, name, initial_balance, position)
			VALUES ($1, $2, $3, $4, $5)`,
			r["id"], g.Book["id"], r["name"], r["initial_balance"], i,
		); err != nil {
			return fmt.Errorf("SaveBook: account: %w", err)
		}
	}

	for i, r := range g.Transactions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, book_id, date, description, payee_id, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r["id"], g.Book["id"], r["date"], r["description"], nullable(r, "payee"), i,
		); err != nil {
			return fmt.Errorf("SaveBook: transaction: %w", err)
		}
	}

	for i, r := range g.Entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries (id, account_id, transaction_id, amount, position)
			VALUES ($1, $2, $3, $4, $5)`,
			r["id"], r["account"], nullable(r, "transaction"), r["amount"], i,
		); err != nil {
			return fmt.Errorf("SaveBook: entry: %w", err)
		}
	}

	for i, r := range g.Documents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, book_id, date, number, doc_type, amount, tax_amount, payee_id, location, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r["id"], g.Book["id"], r["date"], r["number"], r["type"],
			r["amount"], r["tax_amount"], nullable(r, "payee"), r["location"], i,
		); err != nil {
			return fmt.Errorf("SaveBook: document: %w", err)
		}
	}

	for i, l := range g.Links {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO document_transactions (document_id, transaction_id, position)
			VALUES ($1, $2, $3)`,
			l.DocumentID, l.TransactionID, i,
		); err != nil {
			return fmt.Errorf("SaveBook: link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SaveBook: commit: %w", err)
	}
	return nil
}

func (p *Postgres) LoadBook(ctx context.Context, id uuid.UUID) (*ledger.Book, error) {
	g := &graph{}

	var name, period string
	err := p.db.QueryRowContext(ctx,
		`SELECT name, period FROM books WHERE id = $1`, id,
	).Scan(&name, &period)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("LoadBook: book %s: %w", id, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("LoadBook: book: %w", err)
	}
	g.Book = ledger.Record{"id": id.String(), "name": name, "period": period}

	g.Payees, err = p.queryRecords(ctx,
		`SELECT id, name FROM payees WHERE book_id = $1 ORDER BY id`, id,
		func(s scanner) (ledger.Record, error) {
			var pid, pname string
			if err := s.Scan(&pid, &pname); err != nil {
				return nil, err
			}
			return ledger.Record{"id": pid, "name": pname}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("LoadBook: payees: %w", err)
	}

	g.Accounts, err = p.queryRecords(ctx,
		`SELECT id, name, initial_balance FROM accounts WHERE book_id = $1 ORDER BY position`, id,
		func(s scanner) (ledger.Record, error) {
			var aid, aname, initial string
			if err := s.Scan(&aid, &aname, &initial); err != nil {
				return nil, err
			}
			return ledger.Record{"id": aid, "name": aname, "initial_balance": initial}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("LoadBook: accounts: %w", err)
	}

	g.Transactions, err = p.queryRecords(ctx,
		`SELECT id, date, description, payee_id FROM transactions
		WHERE book_id = $1 ORDER BY position`, id,
		func(s scanner) (ledger.Record, error) {
			var tid, description string
			var date time.Time
			var payeeID sql.NullString
			if err := s.Scan(&tid, &date, &description, &payeeID); err != nil {
				return nil, err
			}
			r := ledger.Record{
				"id":          tid,
				"date":        date.UTC().Format(time.RFC3339Nano),
				"description": description,
			}
			if payeeID.Valid {
				r["payee"] = payeeID.String
			}
			return r, nil
		})
	if err != nil {
		return nil, fmt.Errorf("LoadBook: transactions: %w", err)
	}

	g.Entries, err = p.queryRecords(ctx,
		`SELECT e.id, e.account_id, e.transaction_id, e.amount FROM entries e
		JOIN accounts a ON a.id = e.account_id
		WHERE a.book_id = $1 ORDER BY e.position`, id,
		func(s scanner) (ledger.Record, error) {
			var eid, accountID, amount string
			var txID sql.NullString
			if err := s.Scan(&eid, &accountID, &txID, &amount); err != nil {
				return nil, err
			}
			r := ledger.Record{"id": eid, "account": accountID, "amount": amount}
			if txID.Valid {
				r["transaction"] = txID.String
			}
			return r, nil
		})
	if err != nil {
		return nil, fmt.Errorf("LoadBook: entries: %w", err)
	}

	g.Documents, err = p.queryRecords(ctx,
		`SELECT id, date, number, doc_type, amount, tax_amount, payee_id, location
		FROM documents WHERE book_id = $1 ORDER BY position`, id,
		func(s scanner) (ledger.Record, error) {
			var did, number, docType, amount, taxAmount, location string
			var date time.Time
			var payeeID sql.NullString
			if err := s.Scan(&did, &date, &number, &docType, &amount, &taxAmount, &payeeID, &location); err != nil {
				return nil, err
			}
			r := ledger.Record{
				"id":         did,
				"date":       date.UTC().Format(time.RFC3339Nano),
				"number":     number,
				"type":       docType,
				"amount":     amount,
				"tax_amount": taxAmount,
				"location":   location,
			}
			if payeeID.Valid {
				r["payee"] = payeeID.String
			}
			return r, nil
		})
	if err != nil {
		return nil, fmt.Errorf("LoadBook: documents: %w", err)
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT dt.document_id, dt.transaction_id FROM document_transactions dt
		JOIN transactions t ON t.id = dt.transaction_id
		WHERE t.book_id = $1 ORDER BY dt.position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("LoadBook: links: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l link
		if err := rows.Scan(&l.DocumentID, &l.TransactionID); err != nil {
			return nil, fmt.Errorf("LoadBook: links: scan: %w", err)
		}
		g.Links = append(g.Links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadBook: links: rows: %w", err)
	}

	book, err := buildGraph(g)
	if err != nil {
		return nil, fmt.Errorf("LoadBook: %w", err)
	}
	return book, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (p *Postgres) queryRecords(ctx context.Context, query string, id uuid.UUID, scan func(scanner) (ledger.Record, error)) ([]ledger.Record, error) {
	rows, err := p.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return records, nil
}

func nullable(r ledger.Record, key string) sql.NullString {
	v, ok := r[key]
	return sql.NullString{String: v, Valid: ok && v != ""}
}
