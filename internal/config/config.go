package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cashflow/internal/core"
	"cashflow/internal/log"
)

type Config struct {
	// HTTP Server
	Port string

	// Requests per minute per client on the dashboard routes
	RateLimitPerMinute int

	// Logging
	LogLevel string

	// Locale of the recorded data (month names, expense label, sentinel)
	Locale string

	// Dashboard input
	DataSource string
	CSVPath    string

	// SQLite snapshot
	SQLiteDBPath    string
	SnapshotEnabled bool

	// Google Sheets source
	GoogleSpreadsheetID      string
	GoogleSheetRange         string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Notion ingestion
	NotionToken      string
	NotionDatabaseID string
	NotionTimeout    time.Duration
	OutputPath       string

	// AMQP notifications
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Daily chart axis
	TickStep  decimal.Decimal
	TickRound decimal.Decimal
}

// DefaultLocale matches the default Notion template, whose type options are
// "Pengeluaran" and "Pemasukan". Set LOCALE=en for English-labelled data.
const DefaultLocale = "id"

const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
	SourceSheets = "sheets"
)

func Load() *Config {
	cfg := &Config{
		Port:     getEnv("PORT", "5500"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Locale:   getEnv("LOCALE", DefaultLocale),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		DataSource: getEnv("DATA_SOURCE", SourceCSV),
		CSVPath:    getEnv("CSV_PATH", "./data/cash-flow.csv"),

		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/cashflow.db"),
		SnapshotEnabled: getEnvBool("SNAPSHOT_ENABLED", false),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetRange:         getEnv("GOOGLE_SHEET_RANGE", "Records!A:H"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),

		NotionToken:      getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID: getEnv("NOTION_DATABASE_ID", ""),
		NotionTimeout:    getEnvDuration("NOTION_TIMEOUT", 30*time.Second),
		OutputPath:       getEnv("OUTPUT_PATH", "./data/cash-flow.csv"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "cashflow"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ingest_completed"),

		TickStep:  getEnvDecimal("TICK_STEP", decimal.NewFromInt(500_000)),
		TickRound: getEnvDecimal("TICK_ROUND", decimal.NewFromInt(1_000_000)),
	}

	return cfg
}

// Validate checks the settings shared by both binaries and the dashboard input.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}
	if _, err := core.LocaleFor(c.Locale); err != nil {
		errors = append(errors, err.Error())
	}

	switch c.DataSource {
	case SourceCSV:
		if c.CSVPath == "" {
			errors = append(errors, "CSV path cannot be empty when using csv source")
		}
	case SourceSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		}
	case SourceSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetRange == "" {
			errors = append(errors, "Google sheet range is required when using sheets source")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for sheets source")
		}
		if c.GoogleServiceAccountFile != "" && c.GoogleServiceAccountJSON == "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data source '%s': must be one of [%s %s %s]", c.DataSource, SourceCSV, SourceSQLite, SourceSheets))
	}

	if !c.TickStep.IsPositive() {
		errors = append(errors, fmt.Sprintf("invalid tick step %s: must be positive", c.TickStep))
	}
	if !c.TickRound.IsPositive() {
		errors = append(errors, fmt.Sprintf("invalid tick round %s: must be positive", c.TickRound))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// ValidateIngest checks the settings needed by the ingestion command.
func (c *Config) ValidateIngest() error {
	var errors []string

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}
	if _, err := core.LocaleFor(c.Locale); err != nil {
		errors = append(errors, err.Error())
	}
	if c.NotionToken == "" {
		errors = append(errors, "NOTION_TOKEN is required")
	}
	if c.NotionDatabaseID == "" {
		errors = append(errors, "NOTION_DATABASE_ID is required")
	}
	if c.NotionTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid notion timeout %v: must be at least 1 second", c.NotionTimeout))
	} else if c.NotionTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid notion timeout %v: must be at most 10 minutes", c.NotionTimeout))
	}
	if c.OutputPath == "" {
		errors = append(errors, "output path cannot be empty")
	}
	if c.SnapshotEnabled && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when snapshots are enabled")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
