package calendar

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCSV serializes the table as delimited text: a header row followed by
// one line per day, fields in Row order, no index column. The zero rune
// keeps the default comma separator.
func (t *Table) WriteCSV(w io.Writer, sep rune) error {
	csvWriter := csv.NewWriter(w)
	if sep != 0 {
		csvWriter.Comma = sep
	}

	if err := gocsv.MarshalCSV(&t.Rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}

// SaveCSV writes the table as delimited text to the given file path
func (t *Table) SaveCSV(path string, sep rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return t.WriteCSV(f, sep)
}
