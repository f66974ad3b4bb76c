// Package importer converts spreadsheet-style CSV product exports into the
// JSON catalog format served by the API.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

// CSVImporter reads product rows from a CSV export. The header row names
// the columns; unknown columns are ignored.
type CSVImporter struct {
	reader *csv.Reader
}

func NewCSVImporter(r io.Reader) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr}
}

// Run parses all rows and returns the products in file order. Rows with a
// missing id, empty name, or unparsable price fail the whole import; a
// partial catalog is worse than none.
func (i *CSVImporter) Run() ([]domain.Product, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		products []domain.Product
		seen     = map[string]bool{}
		line     = 1
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		p, err := parseRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("row %d: duplicate product id %q", line, p.ID)
		}
		seen[p.ID] = true
		products = append(products, p)
	}

	return products, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	id := field(record, index, "id")
	if id == "" {
		return domain.Product{}, errors.New("missing id")
	}
	name := field(record, index, "name")
	if name == "" {
		return domain.Product{}, errors.New("missing name")
	}
	price, err := decimal.NewFromString(field(record, index, "price"))
	if err != nil {
		return domain.Product{}, fmt.Errorf("bad price: %w", err)
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Image:       field(record, index, "image"),
		Description: field(record, index, "description"),
		Category:    field(record, index, "category"),
	}
	if v := field(record, index, "isnew"); v != "" {
		p.IsNew, _ = strconv.ParseBool(v)
	}
	if v := field(record, index, "isonsale"); v != "" {
		p.IsOnSale, _ = strconv.ParseBool(v)
	}
	if v := field(record, index, "salepercentage"); v != "" {
		if p.SalePercentage, err = strconv.Atoi(v); err != nil {
			return domain.Product{}, fmt.Errorf("bad salePercentage: %w", err)
		}
	}
	if v := field(record, index, "rating"); v != "" {
		if p.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return domain.Product{}, fmt.Errorf("bad rating: %w", err)
		}
	}
	return p, nil
}
