package inventory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(filepath.Join(t.TempDir(), "lib.db"))
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	_, err = mgr.Initialize()
	require.NoError(t, err)
	return mgr
}

func TestAddBookParsesText(t *testing.T) {
	mgr := newManager(t)

	b, err := mgr.AddBook(" 42 ", "Dune", "Frank Herbert", "7")
	require.NoError(t, err)
	assert.Equal(t, &Book{ID: 42, Title: "Dune", Author: "Frank Herbert", Qty: 7}, b)

	got, err := mgr.FindBook("42")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestAddBookInvalidInput(t *testing.T) {
	mgr := newManager(t)

	tests := []struct {
		name string
		id   string
		qty  string
	}{
		{"word id", "abc", "1"},
		{"empty id", "", "1"},
		{"float qty", "50", "1.5"},
		{"word qty", "50", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mgr.AddBook(tt.id, "T", "A", tt.qty)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	n, err := mgr.Database().CountBooks()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestUpdateBook(t *testing.T) {
	mgr := newManager(t)

	require.NoError(t, mgr.UpdateBook("3001", FieldQty, "3"))
	require.NoError(t, mgr.UpdateBook("3001", FieldTitle, "Two Cities"))

	b, err := mgr.FindBook("3001")
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.Qty)
	assert.Equal(t, "Two Cities", b.Title)

	low, err := mgr.LowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, int64(3001), low[0].ID)
}

func TestUpdateBookErrors(t *testing.T) {
	mgr := newManager(t)

	assert.ErrorIs(t, mgr.UpdateBook("999", FieldTitle, "x"), ErrBookNotFound)
	assert.ErrorIs(t, mgr.UpdateBook("x", FieldTitle, "x"), ErrInvalidInput)
	assert.ErrorIs(t, mgr.UpdateBook("3001", FieldQty, "lots"), ErrInvalidInput)

	b, err := mgr.FindBook("3001")
	require.NoError(t, err)
	assert.Equal(t, int64(30), b.Qty)
}

func TestDeleteAndFindBook(t *testing.T) {
	mgr := newManager(t)

	assert.ErrorIs(t, mgr.DeleteBook("nope"), ErrInvalidInput)
	require.NoError(t, mgr.DeleteBook("3002"))
	assert.ErrorIs(t, mgr.DeleteBook("3002"), ErrBookNotFound)

	_, err := mgr.FindBook("3002")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestLowStockThreshold(t *testing.T) {
	mgr := newManager(t)
	assert.Equal(t, int64(DefaultLowStockThreshold), mgr.LowStockThreshold())

	mgr.SetLowStockThreshold(26)
	low, err := mgr.LowStock()
	require.NoError(t, err)

	var ids []int64
	for _, b := range low {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []int64{3003, 3005}, ids)
}

func TestAccountHelpers(t *testing.T) {
	mgr := newManager(t)

	require.NoError(t, mgr.AddUser("clerk", "pw"))
	assert.ErrorIs(t, mgr.AddUser("clerk", "pw"), ErrDuplicateUsername)

	exists, err := mgr.UserExists("clerk")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mgr.ResetPassword("clerk", "pw2"))
	assert.ErrorIs(t, mgr.ResetPassword("ghost", "pw"), ErrUserNotFound)

	s, err := mgr.Authenticate("clerk", "pw2")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.False(t, s.IsAdmin())
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(ErrDuplicateID))
	_, err := ParseInt("book ID", "x")
	assert.True(t, IsRecoverable(err))
	assert.False(t, IsRecoverable(assert.AnError))
	assert.False(t, IsRecoverable(nil))
}
