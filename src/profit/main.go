package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"profit-calculus/src/common/logger"
	ledger "profit-calculus/src/ledger/lib"
	profit "profit-calculus/src/profit/lib"

	"github.com/op/go-logging"
	"github.com/spf13/viper"
)

const (
	SUCCESS_EXIT_CODE                 = 0
	STARTUP_ERROR_EXIT_CODE           = 1
	ERROR_DURING_PROCESSING_EXIT_CODE = 2
)

// InitConfig initializes the application configuration using Viper.
// It reads from config.yaml and environment variables (INPUT_SALES, LOG_LEVEL, ...).
func InitConfig() (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	// Use a replacer to replace env variables underscores with points. This let us
	// use nested configurations in the config file and at the same time define
	// env variables for the nested configurations
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine, everything can come from the environment
	// or from the interactive prompts.
	v.SetConfigFile("./config.yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config.yaml: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", logger.DEFAULT_LOG_LEVEL)
	v.SetDefault("input.batch_size", ledger.DEFAULT_BATCH_SIZE)
	v.SetDefault("ledger.delimiter", string(ledger.DEFAULT_DELIMITER))
	v.SetDefault("ledger.thousands", ledger.DEFAULT_THOUSANDS_SEPARATOR)
	v.SetDefault("ledger.decimal", ledger.DEFAULT_DECIMAL_SEPARATOR)
	v.SetDefault("ledger.currency_symbols", ledger.DEFAULT_LEDGER_CURRENCY_SYMBOLS)
	v.SetDefault("formula.currency_symbols", profit.DEFAULT_CURRENCY_SYMBOLS)
}

// PrintConfig logs the effective configuration of the run.
func PrintConfig(v *viper.Viper, runId profit.RunId, log *logging.Logger) {
	log.Infof("Profit calculus startup | run: %s | log level: %s", runId.Short, v.GetString("log.level"))

	log.Infof("Inputs | sales: %q | categories: %q | sheet: %q | batch size: %d",
		v.GetString("input.sales"),
		v.GetString("input.categories"),
		v.GetString("input.sheet"),
		v.GetInt("input.batch_size"),
	)

	log.Infof("Ledger format | delimiter: %q | thousands: %q | decimal: %q | currency: %v | formula units: %v",
		v.GetString("ledger.delimiter"),
		v.GetString("ledger.thousands"),
		v.GetString("ledger.decimal"),
		v.GetStringSlice("ledger.currency_symbols"),
		v.GetStringSlice("formula.currency_symbols"),
	)

	log.Infof("Outputs | text: %q | xlsx: %q", v.GetString("output.text"), v.GetString("output.xlsx"))
}

func ledgerOptions(v *viper.Viper) (ledger.LedgerOptions, error) {
	delimiter := v.GetString("ledger.delimiter")
	if utf8.RuneCountInString(delimiter) != 1 {
		return ledger.LedgerOptions{}, fmt.Errorf("ledger.delimiter must be a single character, got %q", delimiter)
	}
	comma, _ := utf8.DecodeRuneInString(delimiter)

	return ledger.LedgerOptions{
		Delimiter: comma,
		Sheet:     v.GetString("input.sheet"),
		Normalizer: ledger.Normalizer{
			CurrencySymbols:    v.GetStringSlice("ledger.currency_symbols"),
			ThousandsSeparator: v.GetString("ledger.thousands"),
			DecimalSeparator:   v.GetString("ledger.decimal"),
		},
	}, nil
}

// run reads both inputs, folds the ledger batch by batch and evaluates the groups.
func run(v *viper.Viper, salesPath string, categoriesPath string, log *logging.Logger) (*profit.ProfitResult, error) {
	formulas, err := profit.LoadCategories(categoriesPath)
	if err != nil {
		return nil, err
	}
	if !formulas.HasWildcard() {
		log.Warningf("Categories file %s has no %q entry, unknown categories will fail the run", categoriesPath, profit.WILDCARD_CATEGORY)
	}

	options, err := ledgerOptions(v)
	if err != nil {
		return nil, err
	}

	reader, err := ledger.OpenLedger(salesPath, options)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	aggregator := profit.NewAggregator(profit.NewFormulaEvaluator(v.GetStringSlice("formula.currency_symbols")...))
	if _, err := ledger.FoldInto(reader, v.GetInt("input.batch_size"), aggregator); err != nil {
		return nil, err
	}

	return aggregator.Calculate(formulas)
}

func writeOutputs(v *viper.Viper, result *profit.ProfitResult, runId profit.RunId, log *logging.Logger) error {
	if path := v.GetString("output.text"); path != "" {
		if err := ledger.WriteLines(result.Lines(), path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Infof("Results written to %s", path)
	}

	if path := v.GetString("output.xlsx"); path != "" {
		if err := ledger.WriteXlsxReport(result, runId, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Infof("Report written to %s", path)
	}
	return nil
}

func main() {
	config, err := InitConfig()
	if err != nil {
		fmt.Printf("Error initializing configuration: %v\n", err)
		os.Exit(STARTUP_ERROR_EXIT_CODE)
	}

	err = logger.InitGlobalLogger(config.GetString("log.level"))
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(STARTUP_ERROR_EXIT_CODE)
	}

	log := logger.GetLoggerWithPrefix("[MAIN]")
	runId := profit.NewRunId()
	PrintConfig(config, runId, log)

	fileHandler := ledger.NewFileHandler(os.Stdin, os.Stdout)

	salesPath, err := fileHandler.ResolveFile(config.GetString("input.sales"), ledger.SALES_PROMPT, ledger.SALES_EXTENSION)
	if err != nil {
		fmt.Println(err)
		os.Exit(STARTUP_ERROR_EXIT_CODE)
	}

	categoriesPath, err := fileHandler.ResolveFile(config.GetString("input.categories"), ledger.CATEGORIES_PROMPT, ledger.CATEGORIES_EXTENSION)
	if err != nil {
		fmt.Println(err)
		os.Exit(STARTUP_ERROR_EXIT_CODE)
	}

	result, err := run(config, salesPath, categoriesPath, log)
	if err != nil {
		switch {
		case errors.Is(err, profit.ErrMissingWildcardFormula):
			log.Errorf("Categories configuration error: %v", err)
		case errors.Is(err, profit.ErrMalformedNumericField):
			log.Errorf("Sales ledger input error: %v", err)
		default:
			log.Errorf("Failed calculating profit: %v", err)
		}
		os.Exit(ERROR_DURING_PROCESSING_EXIT_CODE)
	}

	for _, line := range result.Lines() {
		fmt.Println(line)
	}

	if err := writeOutputs(config, result, runId, log); err != nil {
		log.Errorf("Failed writing results: %v", err)
		os.Exit(ERROR_DURING_PROCESSING_EXIT_CODE)
	}

	log.Infof("Run %s finished | categories: %d", runId.Short, result.Len())
	os.Exit(SUCCESS_EXIT_CODE)
}
