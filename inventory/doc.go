// Package inventory stores the bookstore catalog and login accounts in SQLite.
//
// Every write runs in its own transaction and either commits fully or leaves
// the database unchanged. Operator-facing failures are reported through the
// sentinel errors in errors.go; any other error is a storage fault.
package inventory
