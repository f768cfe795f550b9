package console

import (
	"errors"
	"fmt"

	"bookstore-inventory/inventory"
)

var updateFields = map[string]inventory.BookField{
	"1": inventory.FieldTitle,
	"2": inventory.FieldAuthor,
	"3": inventory.FieldQty,
}

var updateLabels = map[inventory.BookField]string{
	inventory.FieldTitle:  "New title: ",
	inventory.FieldAuthor: "New author: ",
	inventory.FieldQty:    "New quantity: ",
}

func invalidChoice(choice string) error {
	return inventory.InvalidInputf("unknown choice %q", choice)
}

func (d *Dispatcher) enterBook() error {
	id, err := d.p.Prompt("Enter book ID: ")
	if err != nil {
		return err
	}
	title, err := d.p.Prompt("Enter title: ")
	if err != nil {
		return err
	}
	author, err := d.p.Prompt("Enter author: ")
	if err != nil {
		return err
	}
	qty, err := d.p.Prompt("Enter quantity: ")
	if err != nil {
		return err
	}

	b, err := d.mgr.AddBook(id, title, author, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Book %d added successfully.\n", b.ID)
	return nil
}

func (d *Dispatcher) updateBook() error {
	id, err := d.p.Prompt("Enter ID of the book to update: ")
	if err != nil {
		return err
	}
	// Reject a bad id before asking which field to change.
	if _, err := inventory.ParseInt("book ID", id); err != nil {
		return err
	}

	fmt.Fprintln(d.out, "Update:\n1. Title\n2. Author\n3. Quantity")
	choice, err := d.p.Prompt("Choice: ")
	if err != nil {
		return err
	}
	field, ok := updateFields[choice]
	if !ok {
		return invalidChoice(choice)
	}

	value, err := d.p.Prompt(updateLabels[field])
	if err != nil {
		return err
	}
	if err := d.mgr.UpdateBook(id, field, value); err != nil {
		return err
	}
	fmt.Fprintln(d.out, "Book updated.")
	return nil
}

func (d *Dispatcher) deleteBook() error {
	id, err := d.p.Prompt("Enter ID of the book to delete: ")
	if err != nil {
		return err
	}
	if err := d.mgr.DeleteBook(id); err != nil {
		return err
	}
	fmt.Fprintln(d.out, "Book deleted.")
	return nil
}

func (d *Dispatcher) searchBooks() error {
	fmt.Fprintln(d.out, "Search by:\n1. ID\n2. Title")
	choice, err := d.p.Prompt("Choice: ")
	if err != nil {
		return err
	}

	var books []*inventory.Book
	switch choice {
	case "1":
		id, err := d.p.Prompt("Enter book ID: ")
		if err != nil {
			return err
		}
		b, err := d.mgr.FindBook(id)
		switch {
		case errors.Is(err, inventory.ErrBookNotFound):
		case err != nil:
			return err
		default:
			books = append(books, b)
		}
	case "2":
		keyword, err := d.p.Prompt("Enter title keyword: ")
		if err != nil {
			return err
		}
		if books, err = d.mgr.SearchTitle(keyword); err != nil {
			return err
		}
	default:
		return invalidChoice(choice)
	}

	if len(books) == 0 {
		fmt.Fprintln(d.out, "No books found.")
		return nil
	}
	for _, b := range books {
		fmt.Fprintf(d.out, "ID: %d | Title: %s | Author: %s | Qty: %d\n", b.ID, b.Title, b.Author, b.Qty)
	}
	return nil
}

func (d *Dispatcher) exportReport() error {
	n, err := d.mgr.ExportReport(d.reportPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Inventory report exported as '%s' (%d books).\n", d.reportPath, n)
	return nil
}

func (d *Dispatcher) addUser() error {
	username, err := d.p.Prompt("Enter new username: ")
	if err != nil {
		return err
	}
	password, err := d.p.PromptSecret("Enter password: ")
	if err != nil {
		return err
	}
	if err := d.mgr.AddUser(username, password); err != nil {
		return err
	}
	fmt.Fprintln(d.out, "User added successfully.")
	return nil
}

func (d *Dispatcher) resetPassword() error {
	username, err := d.p.Prompt("Enter username to reset: ")
	if err != nil {
		return err
	}
	exists, err := d.mgr.UserExists(username)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("reset password for %q: %w", username, inventory.ErrUserNotFound)
	}

	password, err := d.p.PromptSecret("Enter new password: ")
	if err != nil {
		return err
	}
	if err := d.mgr.ResetPassword(username, password); err != nil {
		return err
	}
	fmt.Fprintln(d.out, "Password reset successfully.")
	return nil
}
