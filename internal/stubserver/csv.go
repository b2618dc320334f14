package stubserver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var requiredColumns = []string{"date", "product_name", "size", "unit_price", "quantity"}

// errEmptyCSV is returned for a file without a header row.
var errEmptyCSV = errors.New("no columns to parse from file")

type sale struct {
	date      time.Time
	product   string
	size      string
	unitPrice int
	quantity  int
}

// columnError names the first required column missing from the header.
type columnError struct {
	column string
}

func (e *columnError) Error() string {
	return fmt.Sprintf("Missing column: %s. Required columns: %s", e.column, strings.Join(requiredColumns, ", "))
}

// rowError reports the 1-based data row that could not be converted.
type rowError struct {
	err error
	row int
}

func (e *rowError) Error() string {
	return fmt.Sprintf("Error processing row %d: %v", e.row, e.err)
}

func (e *rowError) Unwrap() error {
	return e.err
}

// parseSales reads a sales CSV. Extra columns are ignored; the whole file is
// rejected on the first bad row.
func parseSales(r io.Reader) ([]sale, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &columnError{column: col}
		}
	}

	var sales []sale
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &rowError{row: row, err: err}
		}

		s, err := parseSale(record, index)
		if err != nil {
			return nil, &rowError{row: row, err: err}
		}
		sales = append(sales, s)
	}

	return sales, nil
}

func parseSale(record []string, index map[string]int) (sale, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[index[name]])
	}

	date, err := time.Parse(dateLayout, field("date"))
	if err != nil {
		return sale{}, fmt.Errorf("invalid date %q", field("date"))
	}

	price, err := parseWhole(field("unit_price"))
	if err != nil {
		return sale{}, fmt.Errorf("invalid unit_price: %w", err)
	}

	qty, err := parseWhole(field("quantity"))
	if err != nil {
		return sale{}, fmt.Errorf("invalid quantity: %w", err)
	}

	product, size := field("product_name"), field("size")
	if product == "" || size == "" {
		return sale{}, errors.New("product_name and size are required")
	}

	return sale{
		date:      date,
		product:   product,
		size:      size,
		unitPrice: price,
		quantity:  qty,
	}, nil
}

// parseWhole accepts "12" and "12.0" alike and truncates toward zero.
func parseWhole(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return int(f), nil
}
