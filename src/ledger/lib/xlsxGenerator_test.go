package ledger_test

import (
	"errors"
	"path/filepath"
	"testing"

	ledger "profit-calculus/src/ledger/lib"
	profit "profit-calculus/src/profit/lib"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXlsxBatchGeneratorReadsNumericAndTextCells(t *testing.T) {
	path := writeWorkbook(t, "Sales", [][]interface{}{
		{"CATEGORY", "COST", "QUANTITY"},
		{"Coffee", 2.5, 10},
		{"Tea", "1,80 €", "4"},
		{},
		{"Coffee", 2.5, 5},
	})

	reader, err := ledger.OpenLedger(path, ledger.DefaultLedgerOptions())
	require.NoError(t, err)
	defer reader.Close()

	batch, err := reader.GetNextBatch(10)
	require.NoError(t, err)
	require.Len(t, batch.Records, 3)
	require.False(t, reader.IsReading())

	require.Equal(t, "2.5", batch.Records[0].UnitCost.String())
	require.Equal(t, int64(10), batch.Records[0].Quantity)
	require.Equal(t, "1.8", batch.Records[1].UnitCost.String())
	require.Equal(t, int64(4), batch.Records[1].Quantity)
}

func TestXlsxBatchGeneratorNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Ledger", [][]interface{}{
		{"CATEGORY", "COST", "QUANTITY"},
		{"Cake", 3.1, 2},
	})

	bg, err := ledger.NewXlsxBatchGenerator(path, "Ledger", ledger.DefaultNormalizer())
	require.NoError(t, err)
	defer bg.Close()

	aggregator := profit.NewAggregator(nil)
	total, err := ledger.FoldInto(bg, 1, aggregator)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	result, err := aggregator.Calculate(profit.CategoryFormulas{"*": "+10%"})
	require.NoError(t, err)
	require.Equal(t, []string{"Cake: 0.62"}, result.Lines())

	_, err = ledger.NewXlsxBatchGenerator(path, "Missing", ledger.DefaultNormalizer())
	require.Error(t, err)
}

func TestXlsxBatchGeneratorMalformedCell(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"CATEGORY", "COST", "QUANTITY"},
		{"Cake", "n/a", 2},
	})

	bg, err := ledger.NewXlsxBatchGenerator(path, "", ledger.DefaultNormalizer())
	require.NoError(t, err)
	defer bg.Close()

	_, err = bg.GetNextBatch(10)
	require.True(t, errors.Is(err, profit.ErrMalformedNumericField))
	require.Contains(t, err.Error(), "row 2")
}

func TestXlsxBatchGeneratorMissingHeader(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"CATEGORY", "PRICE", "QUANTITY"},
	})

	_, err := ledger.NewXlsxBatchGenerator(path, "", ledger.DefaultNormalizer())
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing column: COST")
}

func TestXlsxBatchGeneratorRejectsFractionalQuantity(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"CATEGORY", "COST", "QUANTITY"},
		{"Cake", 2.0, 3.5},
	})

	reader, err := ledger.OpenLedger(path, ledger.DefaultLedgerOptions())
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.GetNextBatch(10)
	require.True(t, errors.Is(err, profit.ErrMalformedNumericField))
	require.Contains(t, err.Error(), "row 2")
}

func TestXlsxBatchGeneratorTextCellsFollowLedgerLocale(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"CATEGORY", "COST", "QUANTITY"},
		{"Beans", "1.500", 1},
		{"Cake", 1.5, "2"},
	})

	reader, err := ledger.OpenLedger(path, ledger.DefaultLedgerOptions())
	require.NoError(t, err)
	defer reader.Close()

	batch, err := reader.GetNextBatch(10)
	require.NoError(t, err)
	require.Len(t, batch.Records, 2)
	require.Equal(t, "1500", batch.Records[0].UnitCost.String())
	require.Equal(t, "1.5", batch.Records[1].UnitCost.String())
	require.Equal(t, int64(2), batch.Records[1].Quantity)
}
