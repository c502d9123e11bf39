package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"profit-calculus/src/common/logger"
)

const DEFAULT_DELIMITER = ';'

var log = logger.GetLoggerWithPrefix("[LEDGER]")

// BatchGenerator streams a delimited sales ledger. Only the current batch is held
// in memory.
type BatchGenerator struct {
	path       string
	file       *os.File
	reader     *csv.Reader
	columns    ledgerColumns
	normalizer Normalizer
	isReading  bool
	row        int
}

func NewBatchGenerator(path string, delimiter rune, normalizer Normalizer) (*BatchGenerator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	bg, err := newBatchGeneratorFromReader(file, delimiter, normalizer)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	bg.path = path
	bg.file = file
	return bg, nil
}

func newBatchGeneratorFromReader(r io.Reader, delimiter rune, normalizer Normalizer) (*BatchGenerator, error) {
	if delimiter == 0 {
		delimiter = DEFAULT_DELIMITER
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns, err := findColumns(headers)
	if err != nil {
		return nil, err
	}

	return &BatchGenerator{
		reader:     reader,
		columns:    columns,
		normalizer: normalizer,
		isReading:  true,
		row:        1,
	}, nil
}

func (bg *BatchGenerator) IsReading() bool {
	return bg.isReading
}

// GetNextBatch reads up to batchSize records. The batch that hits the end of the
// ledger may be short or empty, after which IsReading reports false. A row with a
// malformed cost or quantity stops the read with profit.ErrMalformedNumericField.
func (bg *BatchGenerator) GetNextBatch(batchSize int) (*Batch, error) {
	batch := NewBatch(batchSize)

	for bg.isReading && !batch.IsFull() {
		fields, err := bg.reader.Read()
		if errors.Is(err, io.EOF) {
			bg.isReading = false
			break
		}
		bg.row++
		if err != nil {
			bg.isReading = false
			return nil, fmt.Errorf("read row %d: %w", bg.row, err)
		}

		record, err := parseFields(fields, bg.columns, bg.normalizer.ParseCost, bg.normalizer.ParseQuantity)
		if err != nil {
			bg.isReading = false
			return nil, fmt.Errorf("row %d: %w", bg.row, err)
		}
		batch.AddRecord(record)
	}

	log.Debugf("Read batch of %d records from %s (up to row %d)", batch.Len(), bg.path, bg.row)
	return batch, nil
}

func (bg *BatchGenerator) Close() error {
	bg.isReading = false
	if bg.file == nil {
		return nil
	}

	err := bg.file.Close()
	bg.file = nil
	return err
}
