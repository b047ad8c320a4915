package matrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Separator marks the line between A and B in a matrix file.
const Separator = "---"

// ErrNoRows is returned when a matrix file holds no data rows.
var ErrNoRows = errors.New("matrix: no data rows")

// CSVSource reads both operands from one comma-separated file. Rows of A come
// first, then rows of B, optionally split by a line containing Separator.
type CSVSource struct {
	Path string
}

// Load opens and parses the file.
func (s CSVSource) Load() (*Pair, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("matrix: could not open file: %w", err)
	}
	defer f.Close()

	p, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	return p, nil
}

type csvRow struct {
	line   int
	fields []string
}

// ReadCSV parses a matrix stream. N is half the number of data rows. Cells a
// short row does not provide stay zero; columns past N are ignored.
func ReadCSV(r io.Reader) (*Pair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []csvRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("matrix: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if isSeparator(rec) {
			continue
		}
		rows = append(rows, csvRow{line: line, fields: rec})
	}

	n := len(rows) / 2
	if n == 0 {
		return nil, ErrNoRows
	}

	a, err := fillRows(rows[:n], n)
	if err != nil {
		return nil, err
	}

	b, err := fillRows(rows[n:], n)
	if err != nil {
		return nil, err
	}

	return &Pair{N: n, A: a, B: b}, nil
}

func isSeparator(rec []string) bool {
	for _, f := range rec {
		if strings.Contains(f, Separator) {
			return true
		}
	}

	return false
}

func fillRows(rows []csvRow, n int) (Matrix, error) {
	m := New(n)
	for i := 0; i < n && i < len(rows); i++ {
		for j, field := range rows[i].fields {
			if j >= n {
				break
			}

			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("matrix: line %d, column %d: %w",
					rows[i].line, j+1, err)
			}
			m[i][j] = v
		}
	}

	return m, nil
}
