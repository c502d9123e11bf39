package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	profit "profit-calculus/src/profit/lib"

	"github.com/xuri/excelize/v2"
)

const (
	PROFIT_SHEET = "Profit"
	RUN_SHEET    = "Run"
)

// WriteLines overwrites the file at filePath with the given lines,
// creating parent directories if needed.
func WriteLines(lines []string, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return os.WriteFile(filePath, []byte(content), 0644)
}

// WriteXlsxReport saves result as a workbook with one row per category and a
// second sheet identifying the run.
func WriteXlsxReport(result *profit.ProfitResult, runId profit.RunId, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warningf("Closing report workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", PROFIT_SHEET); err != nil {
		return err
	}
	if _, err := f.NewSheet(RUN_SHEET); err != nil {
		return err
	}

	if err := writeProfitSheet(f, result); err != nil {
		return err
	}
	if err := writeRunSheet(f, runId); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.SaveAs(filePath)
}

func writeProfitSheet(f *excelize.File, result *profit.ProfitResult) error {
	headers := []string{CATEGORY_COLUMN, "PROFIT"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(PROFIT_SHEET, cell, header); err != nil {
			return err
		}
	}

	for i, category := range result.Categories() {
		row := i + 2
		value, _ := result.Get(category)

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(PROFIT_SHEET, cell, category); err != nil {
			return err
		}

		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("profit of %s: %w", category, err)
		}
		cell, _ = excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellFloat(PROFIT_SHEET, cell, amount, profit.PROFIT_DECIMAL_PLACES, 64); err != nil {
			return err
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(PROFIT_SHEET, "A1", "B1", headerStyle)

	if result.Len() > 0 {
		numStyle, _ := f.NewStyle(&excelize.Style{
			NumFmt: 2, // 0.00
		})
		f.SetCellStyle(PROFIT_SHEET, "B2", fmt.Sprintf("B%d", result.Len()+1), numStyle)
	}

	f.SetColWidth(PROFIT_SHEET, "A", "A", 30)
	f.SetColWidth(PROFIT_SHEET, "B", "B", 15)
	return nil
}

func writeRunSheet(f *excelize.File, runId profit.RunId) error {
	rows := [][]interface{}{
		{"RUN ID", runId.Full},
		{"GENERATED AT", time.Now().Format(time.RFC3339)},
	}

	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(RUN_SHEET, cell, &values); err != nil {
			return err
		}
	}

	f.SetColWidth(RUN_SHEET, "A", "A", 15)
	f.SetColWidth(RUN_SHEET, "B", "B", 40)
	return nil
}
