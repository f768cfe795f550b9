package inventory

import (
	"database/sql"
	"errors"
	"fmt"
)

const insertAccountQuery = `INSERT INTO users(username,password) VALUES(?,?)`

// VerifyCredentials returns a session when both username and password match
// an account exactly, or nil when they do not.
func (d *Database) VerifyCredentials(username, password string) (*Session, error) {
	var found string
	err := d.db.QueryRow(`SELECT username FROM users WHERE username=? AND password=?`, username, password).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		d.log.Debug("credentials rejected", "username", username)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	return NewSession(found), nil
}

// CreateAccount inserts a new account. No authorization is checked here.
func (d *Database) CreateAccount(username, password string) error {
	err := d.withTx(func(tx *sql.Tx) error {
		_, err := execPrepared(tx, d.insertAccountStmt, insertAccountQuery, username, password)
		return err
	})
	if err != nil {
		if isConstraintViolation(err) {
			err = errors.Join(ErrDuplicateUsername, err)
		}
		return fmt.Errorf("create account %q: %w", username, err)
	}
	d.log.Debug("account created", "username", username)
	return nil
}

// ResetPassword overwrites the password of an existing account without
// checking the old one.
func (d *Database) ResetPassword(username, newPassword string) error {
	err := d.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE users SET password=? WHERE username=?`, newPassword, username)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset password for %q: %w", username, err)
	}
	d.log.Debug("password reset", "username", username)
	return nil
}

// AccountExists reports whether username has an account.
func (d *Database) AccountExists(username string) (bool, error) {
	var exists bool
	if err := d.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE username=?)`, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("check account %q: %w", username, err)
	}
	return exists, nil
}

// CountAccounts returns the number of login accounts.
func (d *Database) CountAccounts() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
