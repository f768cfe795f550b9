package inventory

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const insertBookQuery = `INSERT INTO book(id,title,author,qty) VALUES(?,?,?,?)`

// InsertBook adds b to the catalog. A taken id yields ErrDuplicateID and
// leaves the existing row untouched.
func (d *Database) InsertBook(b Book) error {
	err := d.withTx(func(tx *sql.Tx) error {
		_, err := execPrepared(tx, d.insertBookStmt, insertBookQuery, b.ID, b.Title, b.Author, b.Qty)
		return err
	})
	if err != nil {
		if isConstraintViolation(err) {
			err = errors.Join(ErrDuplicateID, err)
		}
		return fmt.Errorf("insert book %d: %w", b.ID, err)
	}
	d.log.Debug("book inserted", "id", b.ID)
	return nil
}

// UpdateBookField overwrites one column of the book with the given id and
// returns the number of rows affected. Zero rows is not an error here; callers
// decide what a missing book means.
func (d *Database) UpdateBookField(id int64, field BookField, value any) (int64, error) {
	var query string
	switch field {
	case FieldTitle:
		query = `UPDATE book SET title=? WHERE id=?`
	case FieldAuthor:
		query = `UPDATE book SET author=? WHERE id=?`
	case FieldQty:
		if _, ok := value.(int64); !ok {
			return 0, InvalidInputf("qty must be an integer")
		}
		query = `UPDATE book SET qty=? WHERE id=?`
	default:
		return 0, InvalidInputf("unknown field %q", field)
	}

	var affected int64
	err := d.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(query, value, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("update book %d: %w", id, err)
	}
	d.log.Debug("book updated", "id", id, "field", field, "rows", affected)
	return affected, nil
}

// DeleteBook removes the book with the given id.
func (d *Database) DeleteBook(id int64) error {
	err := d.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM book WHERE id=?`, id)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	d.log.Debug("book deleted", "id", id)
	return nil
}

// FindBookByID returns the book and true, or nil and false when absent.
func (d *Database) FindBookByID(id int64) (*Book, bool, error) {
	var b Book
	err := d.db.QueryRow(`SELECT id,title,author,qty FROM book WHERE id=?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Qty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query book %d: %w", id, err)
	}
	return &b, true, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindBooksByTitle returns books whose title contains keyword, ignoring case.
// An empty keyword matches every book.
func (d *Database) FindBooksByTitle(keyword string) ([]*Book, error) {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	rows, err := d.db.Query(`SELECT id,title,author,qty FROM book WHERE LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return scanBooks(rows)
}

// ListLowStock returns books with qty strictly below threshold.
func (d *Database) ListLowStock(threshold int64) ([]*Book, error) {
	rows, err := d.db.Query(`SELECT id,title,author,qty FROM book WHERE qty < ?`, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return scanBooks(rows)
}

// ListBooksByQty returns every book ordered by ascending quantity.
func (d *Database) ListBooksByQty() ([]*Book, error) {
	rows, err := d.db.Query(`SELECT id,title,author,qty FROM book ORDER BY qty ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return scanBooks(rows)
}

// CountBooks returns the number of rows in the catalog.
func (d *Database) CountBooks() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM book`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}
