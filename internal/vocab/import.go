package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoWords is returned when an import yields no usable entries.
var ErrNoWords = errors.New("no words found")

// Column order of an import file: word, definition, example, translation.
// A first row whose first cell reads "word" is treated as a header.
const (
	colWord = iota
	colDefinition
	colExample
	colTranslation
)

// ImportFile reads a pool from an .xlsx or .csv file. Spreadsheets are
// read from their first sheet.
func ImportFile(path string) ([]Word, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readSheet(path)
	case ".csv":
		rows, err = readCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported vocabulary file %q: want .xlsx or .csv", filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}

	words := Dedupe(fromRows(rows))
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoWords)
	}
	return words, nil
}

func readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads raw rows, tolerating ragged records and loose quoting.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func fromRows(rows [][]string) []Word {
	var out []Word
	for i, row := range rows {
		if i == 0 && strings.EqualFold(cell(row, colWord), "word") {
			continue
		}
		out = append(out, Word{
			Word:        cell(row, colWord),
			Definition:  cell(row, colDefinition),
			Example:     cell(row, colExample),
			Translation: cell(row, colTranslation),
		})
	}
	return out
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
