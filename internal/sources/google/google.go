// Package google reads records from a Google Sheets range laid out like the
// CSV export (header row first).
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/sources"
)

// Credentials selects the service account used to call the Sheets API.
// JSON wins over File when both are set.
type Credentials struct {
	JSON string
	File string
}

// valuesGetter returns the cells of a range, row major.
type valuesGetter func(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)

type Reader struct {
	get           valuesGetter
	spreadsheetID string
	rng           string
	logger        *log.Logger
}

var _ sources.RecordReader = (*Reader)(nil)

// New creates a Sheets-backed reader for rng (e.g. "Records!A:H").
func New(ctx context.Context, spreadsheetID, rng string, creds Credentials, logger *log.Logger) (*Reader, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentSheets)

	svc, err := newSheetsService(ctx, creds, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	get := func(ctx context.Context, id, rng string) ([][]interface{}, error) {
		resp, err := svc.Spreadsheets.Values.Get(id, rng).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		return resp.Values, nil
	}
	return &Reader{get: get, spreadsheetID: spreadsheetID, rng: rng, logger: logger}, nil
}

// newSheetsService initializes a read-only Sheets service with service account credentials.
func newSheetsService(ctx context.Context, creds Credentials, logger *log.Logger) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(creds.JSON) != "":
		logger.DebugContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(creds.JSON)
	case strings.TrimSpace(creds.File) != "":
		data, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		logger.DebugContext(ctx, "Read credentials file", log.FieldFile, creds.File, "size", len(data))
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadRecords fetches the range and converts every non-blank data row.
func (r *Reader) ReadRecords(ctx context.Context) ([]core.Record, error) {
	values, err := r.get(ctx, r.spreadsheetID, r.rng)
	if err != nil {
		return nil, &core.NetworkError{Op: "read sheet range " + r.rng, Err: err}
	}
	records, err := decodeValues(values)
	if err != nil {
		return nil, fmt.Errorf("sheet range %s: %w", r.rng, err)
	}
	r.logger.InfoContext(ctx, "Loaded records from sheet",
		log.FieldSource, r.rng,
		log.FieldRecords, len(records))
	return records, nil
}

func decodeValues(values [][]interface{}) ([]core.Record, error) {
	start := 0
	for start < len(values) && sources.IsBlank(toStrings(values[start])) {
		start++
	}
	if start == len(values) {
		return nil, errors.New("range is empty: header row expected")
	}
	cols, err := sources.MapHeader(toStrings(values[start]))
	if err != nil {
		return nil, err
	}

	var out []core.Record
	for i := start + 1; i < len(values); i++ {
		row := toStrings(values[i])
		if sources.IsBlank(row) {
			continue
		}
		rec, err := cols.Record(row, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
