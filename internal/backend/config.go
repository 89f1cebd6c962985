package backend

import (
	"errors"
	"fmt"

	"cashflow/internal/config"
)

// Config holds what the factory needs for each source type.
type Config struct {
	Type SourceType

	CSVPath string

	SQLiteDBPath string

	GoogleSpreadsheetID      string
	GoogleSheetRange         string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}

	sourceType := SourceType(appConfig.DataSource)
	if !sourceType.IsValid() {
		return Config{}, fmt.Errorf("invalid data source in config: %s", appConfig.DataSource)
	}

	return Config{
		Type:                     sourceType,
		CSVPath:                  appConfig.CSVPath,
		SQLiteDBPath:             appConfig.SQLiteDBPath,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetRange:         appConfig.GoogleSheetRange,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
	}, nil
}

// Validate checks the settings of the selected source only.
func (c Config) Validate() error {
	switch c.Type {
	case CSVSource:
		if c.CSVPath == "" {
			return errors.New("CSV path is required for csv source")
		}
	case SQLiteSource:
		if c.SQLiteDBPath == "" {
			return errors.New("SQLite database path is required for sqlite source")
		}
	case SheetsSource:
		if c.GoogleSpreadsheetID == "" {
			return errors.New("Google Spreadsheet ID is required for sheets source")
		}
		if c.GoogleSheetRange == "" {
			return errors.New("Google sheet range is required for sheets source")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			return errors.New("service account JSON or file is required for sheets source")
		}
	default:
		return fmt.Errorf("invalid source type: %s", c.Type)
	}
	return nil
}
