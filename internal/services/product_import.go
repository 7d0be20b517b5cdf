package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"goldlinks/internal/utils"
	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxImportRows caps the products read from one catalog file
const MaxImportRows = 1000

// Accepted header names per product field, first match wins
var importColumns = map[string][]string{
	"name":        {"name", "title", "product"},
	"description": {"description"},
	"karat":       {"karat", "purity"},
	"style":       {"style", "chain_style", "type"},
	"length":      {"length_inches", "length", "length_in"},
	"weight":      {"weight_grams", "weight", "grams"},
	"price":       {"price"},
	"currency":    {"currency"},
	"in_stock":    {"in_stock", "stock", "available"},
	"url":         {"product_url", "url", "link"},
}

var requiredImportColumns = []string{"name", "karat", "price"}

// Import reads a catalog CSV and creates one product per row for a store
// the actor owns. Rows that fail are reported and skipped.
func (s *ProductService) Import(ctx context.Context, actor Actor, storeID uuid.UUID, r io.Reader) (*models.ImportResult, error) {
	if _, err := s.stores.owned(ctx, actor, storeID); err != nil {
		return nil, err
	}

	records, analysis, err := utils.ParseCSV(r)
	if err != nil {
		return nil, invalid("%s", err)
	}
	if len(records) < 2 || !analysis.HasHeader {
		return nil, invalid("CSV needs a header row and at least one product")
	}
	if len(records)-1 > MaxImportRows {
		return nil, invalid(fmt.Sprintf("CSV has more than %d products", MaxImportRows))
	}

	columns := resolveColumns(utils.HeaderIndex(records[0]))
	for _, field := range requiredImportColumns {
		if _, ok := columns[field]; !ok {
			return nil, invalid("CSV is missing a " + field + " column")
		}
	}

	result := &models.ImportResult{
		Errors:    []models.ImportRowError{},
		Delimiter: string(analysis.Delimiter),
	}
	for i, record := range records[1:] {
		row := i + 2
		req, err := importRow(record, columns, analysis.NumericSeparator)
		if err == nil {
			var product *models.Product
			if product, err = buildProduct(storeID, req); err == nil {
				err = s.products.Create(ctx, product)
			}
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, models.ImportRowError{Row: row, Error: err.Error()})
			continue
		}
		result.Created++
	}

	log.Info().
		Str("store_id", storeID.String()).
		Int("created", result.Created).
		Int("failed", result.Failed).
		Msg("Catalog import finished")
	return result, nil
}

func resolveColumns(index map[string]int) map[string]int {
	columns := make(map[string]int, len(importColumns))
	for field, names := range importColumns {
		for _, name := range names {
			if i, ok := index[name]; ok {
				columns[field] = i
				break
			}
		}
	}
	return columns
}

func importRow(record []string, columns map[string]int, numericSeparator string) (models.CreateProductRequest, error) {
	value := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.Trim(strings.TrimSpace(record[i]), `"'`)
	}
	number := func(field string) (decimal.Decimal, error) {
		raw := utils.NormalizeNumericValue(value(field), numericSeparator)
		if raw == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s %q", field, value(field))
		}
		return d, nil
	}

	req := models.CreateProductRequest{
		Name:        value("name"),
		Description: value("description"),
		Karat:       strings.ToUpper(value("karat")),
		Style:       strings.ToLower(value("style")),
		Currency:    value("currency"),
		ProductURL:  value("url"),
	}

	var err error
	if req.Price, err = number("price"); err != nil {
		return req, err
	}
	if req.WeightGrams, err = number("weight"); err != nil {
		return req, err
	}
	if req.LengthInches, err = number("length"); err != nil {
		return req, err
	}

	if raw := strings.ToLower(value("in_stock")); raw != "" {
		inStock, err := parseStockFlag(raw)
		if err != nil {
			return req, err
		}
		req.InStock = &inStock
	}
	return req, nil
}

func parseStockFlag(raw string) (bool, error) {
	switch raw {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid in_stock %q", raw)
	}
	return v, nil
}
