package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"profit-calculus/src/common/logger"
	profit "profit-calculus/src/profit/lib"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T, sales string, categories string) (string, string) {
	t.Helper()
	dir := t.TempDir()

	salesPath := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(salesPath, []byte(sales), 0644))

	categoriesPath := filepath.Join(dir, "categories.json")
	require.NoError(t, os.WriteFile(categoriesPath, []byte(categories), 0644))

	return salesPath, categoriesPath
}

func testConfig() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.Set("input.batch_size", 2)
	return v
}

func TestRunComputesProfitPerCategory(t *testing.T) {
	salesPath, categoriesPath := writeInputs(t,
		"CATEGORY;COST;QUANTITY\nA;10,00 €;1\nB;5,00 €;3\nA;10,00 €;1\nC;1.000,00 €;1\n",
		`{"categories": {"A": "+10%", "C": "+1%-2€", "*": "+1€"}}`,
	)

	result, err := run(testConfig(), salesPath, categoriesPath, logger.GetLoggerWithPrefix("[TEST]"))
	require.NoError(t, err)
	require.Equal(t, []string{"A: 2.00", "B: 3.00", "C: 8.00"}, result.Lines())
}

func TestRunMissingWildcard(t *testing.T) {
	salesPath, categoriesPath := writeInputs(t,
		"CATEGORY;COST;QUANTITY\nA;10,00 €;1\nB;5,00 €;3\n",
		`{"categories": {"A": "+10%"}}`,
	)

	_, err := run(testConfig(), salesPath, categoriesPath, logger.GetLoggerWithPrefix("[TEST]"))
	require.True(t, errors.Is(err, profit.ErrMissingWildcardFormula))
}

func TestRunMalformedLedger(t *testing.T) {
	salesPath, categoriesPath := writeInputs(t,
		"CATEGORY;COST;QUANTITY\nA;ten;1\n",
		`{"categories": {"*": "+10%"}}`,
	)

	_, err := run(testConfig(), salesPath, categoriesPath, logger.GetLoggerWithPrefix("[TEST]"))
	require.True(t, errors.Is(err, profit.ErrMalformedNumericField))
}

func TestRunRejectsMultiCharacterDelimiter(t *testing.T) {
	salesPath, categoriesPath := writeInputs(t, "CATEGORY;COST;QUANTITY\n", `{"categories": {"*": "+10%"}}`)

	config := testConfig()
	config.Set("ledger.delimiter", ";;")

	_, err := run(config, salesPath, categoriesPath, logger.GetLoggerWithPrefix("[TEST]"))
	require.Error(t, err)
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	config := testConfig()
	config.Set("output.text", filepath.Join(dir, "profit.txt"))
	config.Set("output.xlsx", filepath.Join(dir, "profit.xlsx"))

	result, err := profit.CalculateProfit(
		[]profit.SaleRecord{{Category: "A", UnitCost: decimal.RequireFromString("10"), Quantity: 2}},
		profit.CategoryFormulas{"*": "+10%"},
	)
	require.NoError(t, err)

	err = writeOutputs(config, result, profit.NewRunId(), logger.GetLoggerWithPrefix("[TEST]"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "profit.txt"))
	require.NoError(t, err)
	require.Equal(t, "A: 2.00\n", string(content))
	require.FileExists(t, filepath.Join(dir, "profit.xlsx"))
}
