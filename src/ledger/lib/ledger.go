package ledger

import (
	"path/filepath"
	"strings"

	profit "profit-calculus/src/profit/lib"
)

type LedgerOptions struct {
	Delimiter  rune
	Sheet      string
	Normalizer Normalizer
}

func DefaultLedgerOptions() LedgerOptions {
	return LedgerOptions{
		Delimiter:  DEFAULT_DELIMITER,
		Normalizer: DefaultNormalizer(),
	}
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// OpenLedger picks the reader by file extension: workbooks go to the sheet
// reader, anything else is read as delimited text.
func OpenLedger(path string, options LedgerOptions) (LedgerReader, error) {
	if isWorkbook(path) {
		return NewXlsxBatchGenerator(path, options.Sheet, options.Normalizer)
	}
	return NewBatchGenerator(path, options.Delimiter, options.Normalizer)
}

// FoldInto drains reader batch by batch into aggregator and returns how many
// records were read. It stops at the first error.
func FoldInto(reader LedgerReader, batchSize int, aggregator *profit.Aggregator) (int, error) {
	total := 0
	batches := 0

	for reader.IsReading() {
		batch, err := reader.GetNextBatch(batchSize)
		if err != nil {
			return total, err
		}
		if batch.Len() == 0 {
			continue
		}

		aggregator.AddBatch(batch.Records)
		total += batch.Len()
		batches++
	}

	log.Infof("Ledger consumed | records: %d | batches: %d", total, batches)
	return total, nil
}
