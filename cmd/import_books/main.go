package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bookstore-inventory/config"
	"bookstore-inventory/inventory"
)

func main() {
	cmd := &cobra.Command{
		Use:   "import_books <books.csv>",
		Short: "Import books from a CSV file with columns id,title,author,qty",
		Long: `Import books into the bookstore database.

Each row is inserted on its own; rows with a non-integer id or quantity, or an
id already in the catalog, are reported and skipped. A header row whose first
column is "id" is ignored.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return importFile(cfg.DatabasePath, args[0], cmd.OutOrStdout())
		},
	}
	config.RegisterFlags(cmd.Flags())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func importFile(dbPath, csvPath string, out io.Writer) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", csvPath, err)
	}
	defer f.Close()

	manager, err := inventory.NewManager(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer manager.Close()

	if _, err := manager.Initialize(); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	successCount, errorCount, err := importBooks(manager, f, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully imported: %d books\n", successCount)
	fmt.Fprintf(out, "Errors: %d\n", errorCount)
	return nil
}

// importBooks inserts every CSV row through the manager. Rejected rows are
// counted, not fatal; a storage fault stops the import.
func importBooks(manager *inventory.Manager, r io.Reader, out io.Writer) (successCount, errorCount int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	row := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			fmt.Fprintf(out, "Row %d: ERROR - %v\n", row, err)
			errorCount++
			continue
		}
		if row == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}

		fmt.Fprintf(out, "Importing: %s by %s... ", record[1], record[2])
		book, err := manager.AddBook(record[0], strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), record[3])
		if err != nil {
			if !inventory.IsRecoverable(err) {
				fmt.Fprintln(out, "ERROR")
				return successCount, errorCount, err
			}
			msg := err.Error()
			if errors.Is(err, inventory.ErrDuplicateID) {
				msg = inventory.ErrDuplicateID.Error()
			}
			fmt.Fprintf(out, "ERROR - %s\n", msg)
			errorCount++
			continue
		}

		fmt.Fprintf(out, "SUCCESS (ID: %d)\n", book.ID)
		successCount++
	}
	return successCount, errorCount, nil
}
