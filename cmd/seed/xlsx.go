package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/xuri/excelize/v2"
)

// columns the first sheet's header row must name; others are optional
var requiredColumns = []string{"id", "name", "price"}

func readProductsFromXLSX(filePath string) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, 0, fmt.Errorf("missing column %q", col)
		}
	}

	var products []model.Product
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows[1:] {
		product, ok := parseProductRow(header, row)
		if !ok || seen[product.ID] {
			skipped++
			continue
		}
		seen[product.ID] = true
		product.Position = i + 1
		products = append(products, product)
	}

	return products, skipped, nil
}

// parseProductRow maps one sheet row. Rows without id, name or a valid
// price are rejected.
func parseProductRow(header map[string]int, row []string) (model.Product, bool) {
	cell := func(col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	id := cell("id")
	name := cell("name")
	price, err := strconv.ParseFloat(strings.ReplaceAll(cell("price"), ",", "."), 64)
	if id == "" || name == "" || err != nil || price < 0 {
		return model.Product{}, false
	}

	inStock := true
	if v := cell("in_stock"); v != "" {
		parsed, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return model.Product{}, false
		}
		inStock = parsed
	}

	category := model.ProductCategory(strings.ToLower(cell("category")))
	if category == "" {
		category = model.CategoryFaceCare
	}

	return model.Product{
		ID:          id,
		Name:        name,
		Subtitle:    cell("subtitle"),
		Description: cell("description"),
		Ingredients: splitList(cell("ingredients")),
		Benefits:    splitList(cell("benefits")),
		Usage:       cell("usage"),
		Price:       price,
		ImageURL:    cell("image_url"),
		Category:    category,
		InStock:     inStock,
	}, true
}

// splitList splits a semicolon separated cell
func splitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
