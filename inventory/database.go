package inventory

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Database provides the catalog and credential stores over one SQLite file.
type Database struct {
	db  *sql.DB
	log *slog.Logger

	insertBookStmt    *sql.Stmt
	insertAccountStmt *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath. It does not
// touch the schema; Initialize creates it and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// One operator, one operation at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Database{
		db:  db,
		log: slog.Default().With("logger", "inventory.database", "path", dbPath),
	}, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.insertBookStmt != nil {
		d.insertBookStmt.Close()
	}
	if d.insertAccountStmt != nil {
		d.insertAccountStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema initialization
// ---------------------------------------------------------------------------

var schemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS book (
            id INTEGER PRIMARY KEY,
            title TEXT,
            author TEXT,
            qty INTEGER
        );`,
	`CREATE TABLE IF NOT EXISTS users (
            username TEXT PRIMARY KEY,
            password TEXT NOT NULL
        );`,
}

// Initialize creates both tables if absent, inserts the default admin account
// when none exists, and inserts any missing seed books. It is safe to call on
// every start. adminCreated is true only when the admin row was inserted by
// this call.
func (d *Database) Initialize() (adminCreated bool, err error) {
	err = d.withTx(func(tx *sql.Tx) error {
		for _, stmt := range schemaStmts {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
		}

		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE username=?)`, AdminUsername).Scan(&exists); err != nil {
			return fmt.Errorf("check admin: %w", err)
		}
		if !exists {
			if _, err := tx.Exec(`INSERT INTO users(username,password) VALUES(?,?)`, AdminUsername, AdminPassword); err != nil {
				return fmt.Errorf("insert admin: %w", err)
			}
			adminCreated = true
		}

		for _, b := range seedBooks {
			if _, err := tx.Exec(`INSERT OR IGNORE INTO book(id,title,author,qty) VALUES(?,?,?,?)`,
				b.ID, b.Title, b.Author, b.Qty); err != nil {
				return fmt.Errorf("seed book %d: %w", b.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if err := d.prepareStatements(); err != nil {
		return false, err
	}

	if adminCreated {
		d.log.Info("default admin account created", "username", AdminUsername)
	}
	d.log.Debug("schema initialized")
	return adminCreated, nil
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	if d.insertBookStmt != nil {
		return nil
	}
	var err error
	if d.insertBookStmt, err = d.db.Prepare(insertBookQuery); err != nil {
		return fmt.Errorf("prepare insert book: %w", err)
	}
	if d.insertAccountStmt, err = d.db.Prepare(insertAccountQuery); err != nil {
		return fmt.Errorf("prepare insert account: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

// withTx runs fn in its own transaction. The transaction commits only when fn
// returns nil; otherwise every statement fn issued is rolled back.
func (d *Database) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// execPrepared runs the prepared statement inside tx, falling back to query
// when statements have not been prepared yet.
func execPrepared(tx *sql.Tx, stmt *sql.Stmt, query string, args ...any) (sql.Result, error) {
	if stmt == nil {
		return tx.Exec(query, args...)
	}
	return tx.Stmt(stmt).Exec(args...)
}

func scanBooks(rows *sql.Rows) ([]*Book, error) {
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Qty); err != nil {
			return nil, err
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}
