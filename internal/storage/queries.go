package storage

import (
	"context"
)

type RecordRow struct {
	Position    int64
	ID          string
	UserID      string
	Day         string
	Description string
	Amount      string
	Qty         string
	Category    string
	Type        string
}

type IngestRun struct {
	ID          int64
	Records     int64
	CompletedAt string
}

type InsertIngestRunParams struct {
	Records     int64
	CompletedAt string
}

const deleteRecords = `DELETE FROM records`

func (q *Queries) DeleteRecords(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteRecords)
	return err
}

const insertRecord = `
INSERT INTO records (position, id, user_id, day, description, amount, qty, category, type)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertRecord(ctx context.Context, arg RecordRow) error {
	_, err := q.db.ExecContext(ctx, insertRecord,
		arg.Position,
		arg.ID,
		arg.UserID,
		arg.Day,
		arg.Description,
		arg.Amount,
		arg.Qty,
		arg.Category,
		arg.Type,
	)
	return err
}

const listRecords = `
SELECT position, id, user_id, day, description, amount, qty, category, type
FROM records
ORDER BY position`

func (q *Queries) ListRecords(ctx context.Context) ([]RecordRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecords)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RecordRow
	for rows.Next() {
		var i RecordRow
		if err := rows.Scan(
			&i.Position,
			&i.ID,
			&i.UserID,
			&i.Day,
			&i.Description,
			&i.Amount,
			&i.Qty,
			&i.Category,
			&i.Type,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertIngestRun = `INSERT INTO ingest_runs (records, completed_at) VALUES (?, ?)`

func (q *Queries) InsertIngestRun(ctx context.Context, arg InsertIngestRunParams) error {
	_, err := q.db.ExecContext(ctx, insertIngestRun, arg.Records, arg.CompletedAt)
	return err
}

const lastIngestRun = `
SELECT id, records, completed_at
FROM ingest_runs
ORDER BY id DESC
LIMIT 1`

func (q *Queries) LastIngestRun(ctx context.Context) (IngestRun, error) {
	row := q.db.QueryRowContext(ctx, lastIngestRun)
	var i IngestRun
	err := row.Scan(&i.ID, &i.Records, &i.CompletedAt)
	return i, err
}
