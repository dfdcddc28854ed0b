package file

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyFile      = errors.New("no rows")
	ErrRaggedRows     = errors.New("rows have different lengths")
	ErrInvalidNumeric = errors.New("invalid numeric value")
)

// ReadView loads a dense view matrix from a csv file, one item per row.
func ReadView(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open view file '%s': %w", path, err)
	}
	defer f.Close()

	m, err := ParseView(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("could not parse view file '%s': %w", path, err)
	}
	return m, nil
}

// ParseView reads a dense matrix from csv records.
// A first record that is not numeric is treated as a header.
func ParseView(r io.Reader) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		data []float64
		rows int
		cols int
	)

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		values, err := parse(record)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if rows == 0 {
			cols = len(values)
		} else if len(values) != cols {
			return nil, fmt.Errorf("line %d has %d values instead of %d: %w", line, len(values), cols, ErrRaggedRows)
		}
		data = append(data, values...)
		rows++
	}

	if rows == 0 || cols == 0 {
		return nil, ErrEmptyFile
	}
	return mat.NewDense(rows, cols, data), nil
}

func parse(record []string) ([]float64, error) {
	values := make([]float64, len(record))
	for i, s := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("'%s': %w", s, ErrInvalidNumeric)
		}
		values[i] = v
	}
	return values, nil
}
