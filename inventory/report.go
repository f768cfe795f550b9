package inventory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReportHeader is the first line of every inventory report.
const ReportHeader = "📚 Bookstore Inventory Report"

const reportRuleWidth = 35

// WriteReport renders books, in the order given, as labeled blocks.
func WriteReport(w io.Writer, books []*Book) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ReportHeader)
	fmt.Fprintln(bw, strings.Repeat("=", reportRuleWidth))
	for _, b := range books {
		fmt.Fprintf(bw, "ID: %d\nTitle: %s\nAuthor: %s\nQuantity: %d\n%s\n",
			b.ID, b.Title, b.Author, b.Qty, strings.Repeat("-", reportRuleWidth))
	}
	return bw.Flush()
}

// ExportReport writes every book, lowest quantity first, to path, replacing
// any existing file. It returns the number of books written.
func (d *Database) ExportReport(path string) (int, error) {
	books, err := d.ListBooksByQty()
	if err != nil {
		return 0, err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	if err := WriteReport(f, books); err != nil {
		f.Close()
		return 0, fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close report: %w", err)
	}
	d.log.Debug("report exported", "file", path, "books", len(books))
	return len(books), nil
}
