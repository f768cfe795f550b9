package console

import (
	"errors"
	"fmt"
	"io"

	"bookstore-inventory/inventory"
)

// CredentialVerifier checks a username/password pair. A nil session with a
// nil error means the pair did not match.
type CredentialVerifier interface {
	Authenticate(username, password string) (*inventory.Session, error)
}

// Authenticate asks for credentials until a pair matches. There is no attempt
// limit; it returns an error only when input ends or the store fails.
func Authenticate(p Prompter, out io.Writer, v CredentialVerifier) (*inventory.Session, error) {
	for {
		fmt.Fprintln(out, "Login")
		username, err := p.Prompt("Username: ")
		if err != nil && !errors.Is(err, inventory.ErrInvalidInput) {
			return nil, err
		}
		password, perr := p.PromptSecret("Password: ")
		if perr != nil && !errors.Is(perr, inventory.ErrInvalidInput) {
			return nil, perr
		}
		if err != nil || perr != nil {
			fmt.Fprintln(out, "Invalid credentials.")
			continue
		}

		session, err := v.Authenticate(username, password)
		if err != nil {
			return nil, err
		}
		if session != nil {
			fmt.Fprintf(out, "Welcome, %s!\n", session.Username)
			return session, nil
		}
		fmt.Fprintln(out, "Invalid credentials.")
	}
}
