package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultLowStockThreshold is the quantity below which a book counts as low stock.
const DefaultLowStockThreshold = 5

// Manager is a thin façade over the Database that accepts operator text,
// keeping console code simple.
type Manager struct {
	db        *Database
	threshold int64
}

// NewManager opens (or creates) the SQLite database at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	db, err := NewDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &Manager{db: db, threshold: DefaultLowStockThreshold}, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error { return m.db.Close() }

// Database exposes the stores behind the façade.
func (m *Manager) Database() *Database { return m.db }

// SetLowStockThreshold changes the threshold used by LowStock.
func (m *Manager) SetLowStockThreshold(n int64) { m.threshold = n }

// LowStockThreshold returns the threshold used by LowStock.
func (m *Manager) LowStockThreshold() int64 { return m.threshold }

// Initialize prepares the schema and seed data.
func (m *Manager) Initialize() (adminCreated bool, err error) { return m.db.Initialize() }

// ParseInt parses operator text as a base-10 integer.
func ParseInt(name, text string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, InvalidInputf("%s must be an integer", name)
	}
	return n, nil
}

// ------------------ Book helpers ------------------

// AddBook parses idText and qtyText and inserts the book.
func (m *Manager) AddBook(idText, title, author, qtyText string) (*Book, error) {
	id, err := ParseInt("book ID", idText)
	if err != nil {
		return nil, err
	}
	qty, err := ParseInt("quantity", qtyText)
	if err != nil {
		return nil, err
	}
	b := Book{ID: id, Title: title, Author: author, Qty: qty}
	if err := m.db.InsertBook(b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBook overwrites one field. A qty value must parse as an integer, and
// an id matching no book yields ErrBookNotFound.
func (m *Manager) UpdateBook(idText string, field BookField, valueText string) error {
	id, err := ParseInt("book ID", idText)
	if err != nil {
		return err
	}

	var value any = valueText
	if field == FieldQty {
		if value, err = ParseInt("quantity", valueText); err != nil {
			return err
		}
	}

	rows, err := m.db.UpdateBookField(id, field, value)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("update book %d: %w", id, ErrBookNotFound)
	}
	return nil
}

// DeleteBook parses idText and removes the book.
func (m *Manager) DeleteBook(idText string) error {
	id, err := ParseInt("book ID", idText)
	if err != nil {
		return err
	}
	return m.db.DeleteBook(id)
}

// FindBook parses idText and looks the book up. A missing book is reported
// as ErrBookNotFound.
func (m *Manager) FindBook(idText string) (*Book, error) {
	id, err := ParseInt("book ID", idText)
	if err != nil {
		return nil, err
	}
	b, ok, err := m.db.FindBookByID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	return b, nil
}

func (m *Manager) SearchTitle(keyword string) ([]*Book, error) {
	return m.db.FindBooksByTitle(keyword)
}

func (m *Manager) LowStock() ([]*Book, error)       { return m.db.ListLowStock(m.threshold) }
func (m *Manager) InventoryByQty() ([]*Book, error) { return m.db.ListBooksByQty() }

// ExportReport writes the inventory report to path.
func (m *Manager) ExportReport(path string) (int, error) { return m.db.ExportReport(path) }

// ------------------ Account helpers ------------------

func (m *Manager) Authenticate(username, password string) (*Session, error) {
	return m.db.VerifyCredentials(username, password)
}

func (m *Manager) AddUser(username, password string) error {
	return m.db.CreateAccount(username, password)
}

func (m *Manager) UserExists(username string) (bool, error) {
	return m.db.AccountExists(username)
}

func (m *Manager) ResetPassword(username, newPassword string) error {
	return m.db.ResetPassword(username, newPassword)
}
