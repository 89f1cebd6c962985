// Package notion pulls expense records out of a Notion database.
package notion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"

	"cashflow/internal/core"
	"cashflow/internal/log"
)

// pageSize is the largest page the query endpoint accepts.
const pageSize = 100

// DatabaseQuerier is the part of the Notion SDK the client needs.
type DatabaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

type Client struct {
	db     DatabaseQuerier
	names  PropertyNames
	logger *log.Logger
}

// NewClient creates a client authenticated with an integration token. Every
// HTTP call made on its behalf is bounded by timeout.
func NewClient(token string, timeout time.Duration, names PropertyNames, logger *log.Logger) *Client {
	api := notionapi.NewClient(
		notionapi.Token(token),
		notionapi.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return NewClientWithQuerier(api.Database, names, logger)
}

// NewClientWithQuerier wraps an existing querier, mostly for tests.
func NewClientWithQuerier(db DatabaseQuerier, names PropertyNames, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Client{
		db:     db,
		names:  names,
		logger: logger.WithComponent(log.ComponentNotion),
	}
}

// Fetch returns every record of the database, following the pagination
// cursor until the service reports no more results. Extraction stops at the
// first page with a missing field.
func (c *Client) Fetch(ctx context.Context, databaseID string) ([]core.Record, error) {
	var (
		records []core.Record
		cursor  notionapi.Cursor
		seen    = map[notionapi.Cursor]bool{}
		pages   int
	)

	for {
		req := &notionapi.DatabaseQueryRequest{PageSize: pageSize, StartCursor: cursor}
		resp, err := c.db.Query(ctx, notionapi.DatabaseID(databaseID), req)
		if err != nil {
			return nil, &core.NetworkError{Op: "query notion database " + databaseID, Err: err}
		}
		pages++

		for _, page := range resp.Results {
			rec, err := ExtractRecord(page, c.names)
			if err != nil {
				return nil, err
			}
			c.warnZeroNumbers(ctx, rec)
			records = append(records, rec)
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		if seen[resp.NextCursor] {
			return nil, &core.NetworkError{
				Op:  "query notion database " + databaseID,
				Err: fmt.Errorf("cursor %q returned twice", resp.NextCursor),
			}
		}
		seen[resp.NextCursor] = true
		cursor = resp.NextCursor
	}

	c.logger.Info("Fetched Notion database",
		log.FieldDatabaseID, databaseID,
		log.FieldRecords, len(records),
		"pages", pages)
	return records, nil
}

// warnZeroNumbers flags number properties that read as 0. The SDK decodes an
// empty number cell as 0, so the two cannot be told apart.
func (c *Client) warnZeroNumbers(ctx context.Context, rec core.Record) {
	for _, n := range []struct {
		name  string
		value core.Money
	}{
		{c.names.Value, rec.Value},
		{c.names.Qty, rec.Qty},
	} {
		if n.value.IsZero() {
			c.logger.WarnContext(ctx, "Number property is zero or empty",
				log.FieldRecordID, rec.ID,
				"property", n.name)
		}
	}
}
