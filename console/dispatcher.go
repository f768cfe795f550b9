package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"bookstore-inventory/inventory"
)

// ErrInvalidOption is returned for an unknown menu code, or an admin-only
// code chosen by a standard session.
var ErrInvalidOption = errors.New("invalid option")

// command is one row of the menu. adminOnly rows are hidden from, and
// rejected for, standard sessions.
type command struct {
	code      string
	label     string
	adminOnly bool
	exit      bool
	run       func(d *Dispatcher) error
}

var commands = []command{
	{code: "1", label: "Enter book", run: (*Dispatcher).enterBook},
	{code: "2", label: "Update book", run: (*Dispatcher).updateBook},
	{code: "3", label: "Delete book", run: (*Dispatcher).deleteBook},
	{code: "4", label: "Search books", run: (*Dispatcher).searchBooks},
	{code: "5", label: "Export inventory report", run: (*Dispatcher).exportReport},
	{code: "6", label: "Add new user", adminOnly: true, run: (*Dispatcher).addUser},
	{code: "7", label: "Reset user password", adminOnly: true, run: (*Dispatcher).resetPassword},
	{code: "0", label: "Exit", exit: true},
}

// Dispatcher maps menu selections to store operations for one session.
type Dispatcher struct {
	mgr        *inventory.Manager
	session    *inventory.Session
	p          Prompter
	out        io.Writer
	reportPath string
	log        *slog.Logger
}

// NewDispatcher binds the menu to an authenticated session.
func NewDispatcher(mgr *inventory.Manager, session *inventory.Session, p Prompter, out io.Writer, reportPath string) *Dispatcher {
	return &Dispatcher{
		mgr:        mgr,
		session:    session,
		p:          p,
		out:        out,
		reportPath: reportPath,
		log:        slog.Default().With("logger", "console.dispatcher", "user", session.Username),
	}
}

// lookup is the single capability check: a code resolves only if it exists
// and the session's role may use it.
func (d *Dispatcher) lookup(code string) (command, bool) {
	for _, c := range commands {
		if c.code != code {
			continue
		}
		if c.adminOnly && !d.session.IsAdmin() {
			return command{}, false
		}
		return c, true
	}
	return command{}, false
}

// Dispatch runs the command chosen by code. done is true once exit is chosen.
func (d *Dispatcher) Dispatch(code string) (done bool, err error) {
	c, ok := d.lookup(code)
	if !ok {
		d.log.Debug("option rejected", "code", code)
		return false, fmt.Errorf("%w: %q", ErrInvalidOption, code)
	}
	if c.exit {
		return true, nil
	}
	d.log.Debug("dispatch", "code", code, "command", c.label)
	return false, c.run(d)
}

// Run shows the low-stock banner, then serves the menu until exit is chosen.
// Taxonomy errors are reported and the loop continues; any other error ends
// the session and is returned.
func (d *Dispatcher) Run() error {
	if err := d.showLowStock(); err != nil {
		return err
	}

	for {
		d.printMenu()
		var done bool
		choice, err := d.p.Prompt("Enter your choice: ")
		if err == nil {
			done, err = d.Dispatch(choice)
		}
		if done {
			fmt.Fprintln(d.out, "Goodbye!")
			return nil
		}
		if err != nil {
			if !isRecoverable(err) {
				return err
			}
			fmt.Fprintln(d.out, describe(err))
		}
	}
}

func (d *Dispatcher) printMenu() {
	fmt.Fprintln(d.out, "\nBookstore Menu")
	for _, c := range commands {
		if c.adminOnly && !d.session.IsAdmin() {
			continue
		}
		fmt.Fprintf(d.out, "%s. %s\n", c.code, c.label)
	}
}

func (d *Dispatcher) showLowStock() error {
	books, err := d.mgr.LowStock()
	if err != nil {
		return err
	}
	threshold := d.mgr.LowStockThreshold()
	if len(books) == 0 {
		fmt.Fprintf(d.out, "\nAll books are well-stocked (Qty >= %d).\n", threshold)
		return nil
	}
	fmt.Fprintf(d.out, "\nLOW STOCK BOOKS (Qty < %d):\n", threshold)
	for _, b := range books {
		fmt.Fprintf(d.out, "ID: %d | Title: %s | Qty: %d\n", b.ID, b.Title, b.Qty)
	}
	return nil
}

func isRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidOption) || inventory.IsRecoverable(err)
}

// describe turns a taxonomy error into the line shown to the operator.
func describe(err error) string {
	switch {
	case errors.Is(err, ErrInvalidOption):
		return "Invalid option."
	case errors.Is(err, inventory.ErrDuplicateID):
		return "Book ID already exists."
	case errors.Is(err, inventory.ErrDuplicateUsername):
		return "Username already exists."
	case errors.Is(err, inventory.ErrBookNotFound):
		return "Book not found."
	case errors.Is(err, inventory.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, inventory.ErrInvalidInput):
		var ie *inventory.InputError
		if errors.As(err, &ie) && ie.Detail != "" {
			return "Invalid input: " + ie.Detail + "."
		}
		return "Invalid input."
	}
	return "Error: " + err.Error()
}
