package console

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-inventory/inventory"
)

func newManager(t *testing.T) *inventory.Manager {
	t.Helper()
	mgr, err := inventory.NewManager(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	_, err = mgr.Initialize()
	require.NoError(t, err)
	return mgr
}

// script feeds one line per input, as an operator typing at the prompt would.
func script(lines ...string) *Terminal {
	return NewTerminal(strings.NewReader(strings.Join(lines, "\n")+"\n"), &bytes.Buffer{}, -1)
}

func runScript(t *testing.T, mgr *inventory.Manager, username string, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	d := NewDispatcher(mgr, inventory.NewSession(username), script(lines...), &out, filepath.Join(t.TempDir(), "report.txt"))
	err := d.Run()
	return out.String(), err
}

func TestAuthenticateRetriesUntilMatch(t *testing.T) {
	mgr := newManager(t)
	var out bytes.Buffer

	p := script("admin", "wrong", "nobody", "adm1n", "  admin  ", " adm1n ")
	s, err := Authenticate(p, &out, mgr)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, inventory.RoleAdmin, s.Role)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid credentials."))
	assert.Contains(t, out.String(), "Welcome, admin!")
}

func TestAuthenticateEndsWithInput(t *testing.T) {
	mgr := newManager(t)

	_, err := Authenticate(script("admin", "wrong"), &bytes.Buffer{}, mgr)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestDispatchRoleGate(t *testing.T) {
	mgr := newManager(t)

	tests := []struct {
		name    string
		user    string
		code    string
		wantErr bool
	}{
		{"standard add user", "clerk", "6", true},
		{"standard reset password", "clerk", "7", true},
		{"unknown code", "admin", "8", true},
		{"empty code", "clerk", "", true},
		{"padded code", "clerk", "1 ", true},
		{"exit", "clerk", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(mgr, inventory.NewSession(tt.user), script(), &bytes.Buffer{}, "unused.txt")
			done, err := d.Dispatch(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOption)
				assert.False(t, done)
				return
			}
			require.NoError(t, err)
			assert.True(t, done)
		})
	}
}

func TestStandardSessionCannotAddUser(t *testing.T) {
	mgr := newManager(t)

	out, err := runScript(t, mgr, "clerk", "6", "intruder", "pw", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid option.")
	assert.NotContains(t, out, "6. Add new user")
	assert.NotContains(t, out, "7. Reset user password")

	n, err := mgr.Database().CountAccounts()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAdminManagesAccounts(t *testing.T) {
	mgr := newManager(t)

	out, err := runScript(t, mgr, "admin",
		"6", "clerk", "pw",
		"6", "clerk", "other",
		"7", "ghost",
		"7", "clerk", "pw2",
		"0",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "6. Add new user")
	assert.Contains(t, out, "User added successfully.")
	assert.Contains(t, out, "Username already exists.")
	assert.Contains(t, out, "User not found.")
	assert.Contains(t, out, "Password reset successfully.")
	assert.Contains(t, out, "Goodbye!")

	s, err := mgr.Authenticate("clerk", "pw2")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestBookCommands(t *testing.T) {
	mgr := newManager(t)

	out, err := runScript(t, mgr, "clerk",
		"1", "42", "Dune", "Frank Herbert", "2",
		"1", "42", "Again", "X", "1",
		"1", "forty", "T", "A", "1",
		"2", "42", "3", "9",
		"2", "999", "1", "Ghost",
		"2", "42", "4",
		"2", "42", "3", "nine",
		"3", "3001",
		"3", "3001",
		"0",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Book 42 added successfully.")
	assert.Contains(t, out, "Book ID already exists.")
	assert.Contains(t, out, "Invalid input: book ID must be an integer.")
	assert.Contains(t, out, "Book updated.")
	assert.Contains(t, out, "Book not found.")
	assert.Contains(t, out, `Invalid input: unknown choice "4".`)
	assert.Contains(t, out, "Invalid input: quantity must be an integer.")
	assert.Contains(t, out, "Book deleted.")

	b, err := mgr.FindBook("42")
	require.NoError(t, err)
	assert.Equal(t, inventory.Book{ID: 42, Title: "Dune", Author: "Frank Herbert", Qty: 9}, *b)

	_, err = mgr.FindBook("3001")
	assert.ErrorIs(t, err, inventory.ErrBookNotFound)
}

func TestSearchCommand(t *testing.T) {
	mgr := newManager(t)

	out, err := runScript(t, mgr, "clerk",
		"4", "1", "3004",
		"4", "1", "1",
		"4", "2", "LORD",
		"4", "3",
		"0",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "ID: 3004 | Title: The Lord of the Rings | Author: J.R.R Tolkien | Qty: 37"))
	assert.Contains(t, out, "No books found.")
	assert.Contains(t, out, `Invalid input: unknown choice "3".`)
}

func TestExportCommand(t *testing.T) {
	mgr := newManager(t)

	out, err := runScript(t, mgr, "clerk", "5", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "(5 books)")
}

func TestLowStockBanner(t *testing.T) {
	mgr := newManager(t)

	out, err := runScript(t, mgr, "clerk", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "All books are well-stocked (Qty >= 5).")

	require.NoError(t, mgr.UpdateBook("3005", inventory.FieldQty, "1"))
	out, err = runScript(t, mgr, "clerk", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "LOW STOCK BOOKS (Qty < 5):")
	assert.Contains(t, out, "ID: 3005 | Title: Alice in Wonderland | Qty: 1")
}

func TestRunEndsWithInput(t *testing.T) {
	mgr := newManager(t)

	_, err := runScript(t, mgr, "clerk", "4")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestStorageFaultEndsSession(t *testing.T) {
	mgr := newManager(t)
	require.NoError(t, mgr.Close())

	_, err := runScript(t, mgr, "clerk", "5", "0")
	require.Error(t, err)
	assert.False(t, isRecoverable(err))
}

func TestTerminalReadsLongAndUnterminatedLines(t *testing.T) {
	title := strings.Repeat("a", 70000)
	term := NewTerminal(strings.NewReader(title+"\r\n  last  "), &bytes.Buffer{}, -1)

	got, err := term.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, title, got)

	got, err = term.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = term.Prompt("> ")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestLongTitleKeepsSession(t *testing.T) {
	mgr := newManager(t)
	title := strings.Repeat("a", 70000)

	out, err := runScript(t, mgr, "clerk", "1", "77", title, "Author", "3", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Book 77 added successfully.")
	assert.Contains(t, out, "Goodbye!")

	b, err := mgr.FindBook("77")
	require.NoError(t, err)
	assert.Len(t, b.Title, 70000)
}

func TestOverlongLineIsInvalidInput(t *testing.T) {
	mgr := newManager(t)
	huge := strings.Repeat("b", MaxLineLength+1)

	out, err := runScript(t, mgr, "clerk", huge, "1", "78", huge, "0")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, fmt.Sprintf("Invalid input: line longer than %d bytes.", MaxLineLength)))
	assert.Contains(t, out, "Goodbye!")

	_, err = mgr.FindBook("78")
	assert.ErrorIs(t, err, inventory.ErrBookNotFound)

	var authOut bytes.Buffer
	s, err := Authenticate(script(huge, "x", "admin", "adm1n"), &authOut, mgr)
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())
	assert.Equal(t, 1, strings.Count(authOut.String(), "Invalid credentials."))
}

func TestDescribeKeepsInputDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bare sentinel", inventory.ErrInvalidInput, "Invalid input."},
		{"detail", inventory.InvalidInputf("qty must be an integer"), "Invalid input: qty must be an integer."},
		{"wrapped detail", fmt.Errorf("insert book 1: %w", inventory.InvalidInputf("qty must be an integer")), "Invalid input: qty must be an integer."},
		{"wrapped not found", fmt.Errorf("book 1: %w", inventory.ErrBookNotFound), "Book not found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}
