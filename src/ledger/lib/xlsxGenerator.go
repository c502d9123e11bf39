package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// XlsxBatchGenerator streams a sales ledger stored in a workbook sheet, using the
// same header names as the delimited ledger.
type XlsxBatchGenerator struct {
	path       string
	sheet      string
	file       *excelize.File
	rows       *excelize.Rows
	columns    ledgerColumns
	normalizer Normalizer
	isReading  bool
	row        int
}

// NewXlsxBatchGenerator opens sheet of the workbook at path. An empty sheet name
// selects the first sheet.
func NewXlsxBatchGenerator(path string, sheet string, normalizer Normalizer) (*XlsxBatchGenerator, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	bg := &XlsxBatchGenerator{
		path:       path,
		file:       file,
		normalizer: normalizer,
		isReading:  true,
	}

	if err := bg.open(sheet); err != nil {
		bg.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return bg, nil
}

func (bg *XlsxBatchGenerator) open(sheet string) error {
	if sheet == "" {
		sheets := bg.file.GetSheetList()
		if len(sheets) == 0 {
			return fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	bg.sheet = sheet

	rows, err := bg.file.Rows(sheet)
	if err != nil {
		return fmt.Errorf("open sheet %s: %w", sheet, err)
	}
	bg.rows = rows

	if !rows.Next() {
		if err := rows.Error(); err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		return fmt.Errorf("read header: sheet %s is empty", sheet)
	}
	bg.row = 1

	headers, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	bg.columns, err = findColumns(headers)
	return err
}

func (bg *XlsxBatchGenerator) IsReading() bool {
	return bg.isReading
}

// GetNextBatch follows the BatchGenerator contract. Blank rows are skipped.
func (bg *XlsxBatchGenerator) GetNextBatch(batchSize int) (*Batch, error) {
	batch := NewBatch(batchSize)

	for bg.isReading && !batch.IsFull() {
		if !bg.rows.Next() {
			bg.isReading = false
			if err := bg.rows.Error(); err != nil {
				return nil, fmt.Errorf("read row %d: %w", bg.row+1, err)
			}
			break
		}
		bg.row++

		fields, err := bg.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			bg.isReading = false
			return nil, fmt.Errorf("read row %d: %w", bg.row, err)
		}
		if isBlank(fields) {
			continue
		}

		record, err := parseFields(fields, bg.columns, bg.parseCost, bg.parseQuantity)
		if err != nil {
			bg.isReading = false
			return nil, fmt.Errorf("row %d: %w", bg.row, err)
		}
		batch.AddRecord(record)
	}

	log.Debugf("Read batch of %d records from %s[%s] (up to row %d)", batch.Len(), bg.path, bg.sheet, bg.row)
	return batch, nil
}

func (bg *XlsxBatchGenerator) Close() error {
	bg.isReading = false

	if bg.rows != nil {
		bg.rows.Close()
		bg.rows = nil
	}

	if bg.file == nil {
		return nil
	}
	err := bg.file.Close()
	bg.file = nil
	return err
}

func isBlank(fields []string) bool {
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// isNumericCell reports whether the cell at column index col of the current row is
// stored as a number. Number cells carry no type attribute or "n".
func (bg *XlsxBatchGenerator) isNumericCell(col int) bool {
	cell, err := excelize.CoordinatesToCellName(col+1, bg.row)
	if err != nil {
		return false
	}

	cellType, err := bg.file.GetCellType(bg.sheet, cell)
	if err != nil {
		log.Warningf("Reading type of %s!%s: %v", bg.sheet, cell, err)
		return false
	}
	return cellType == excelize.CellTypeUnset || cellType == excelize.CellTypeNumber
}

func (bg *XlsxBatchGenerator) parseCost(raw string) (decimal.Decimal, error) {
	return bg.normalizer.ParseCellCost(raw, bg.isNumericCell(bg.columns.cost))
}

func (bg *XlsxBatchGenerator) parseQuantity(raw string) (int64, error) {
	return bg.normalizer.ParseCellQuantity(raw, bg.isNumericCell(bg.columns.quantity))
}
