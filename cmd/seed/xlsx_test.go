package main

import (
	"path/filepath"
	"testing"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}

	path := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadProductsFromXLSX(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"ID", "Name", "Price", "Ingredients", "Category", "In_Stock"},
		{"lippenbalsem", "Lippenbalsem", "9,95", "Bijenwas; Sheaboter;", "Gezichtsverzorging", "false"},
		{"", "Zonder id", "1.00"},
		{"voetbalsem", "Voetbalsem", "gratis"},
		{"handbalsem", "Handbalsem", "14.5"},
		{"lippenbalsem", "Dubbel", "9.95"},
	})

	products, skipped, err := readProductsFromXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, products, 2)

	lip := products[0]
	assert.Equal(t, "lippenbalsem", lip.ID)
	assert.Equal(t, 9.95, lip.Price)
	assert.Equal(t, []string{"Bijenwas", "Sheaboter"}, lip.Ingredients)
	assert.Equal(t, model.CategoryFaceCare, lip.Category)
	assert.False(t, lip.InStock)
	assert.Equal(t, 1, lip.Position)

	hand := products[1]
	assert.Equal(t, 14.5, hand.Price)
	assert.True(t, hand.InStock)
	assert.Equal(t, []string{}, hand.Benefits)
	assert.Equal(t, 4, hand.Position)
}

func TestReadProductsFromXLSX_MissingColumn(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"id", "name"},
		{"lippenbalsem", "Lippenbalsem"},
	})

	_, _, err := readProductsFromXLSX(path)
	assert.Error(t, err)
}

func TestReadProductsFromXLSX_MissingFile(t *testing.T) {
	_, _, err := readProductsFromXLSX(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}
