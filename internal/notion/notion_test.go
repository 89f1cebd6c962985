package notion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jomei/notionapi"

	"cashflow/internal/core"
	"cashflow/internal/log"
)

type fakeQuerier struct {
	responses []*notionapi.DatabaseQueryResponse
	err       error
	cursors   []notionapi.Cursor
}

func (f *fakeQuerier) Query(_ context.Context, _ notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	f.cursors = append(f.cursors, req.StartCursor)
	if f.err != nil {
		return nil, f.err
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Output: io.Discard})
}

func testPage(id string, day int, value float64, category, kind string) notionapi.Page {
	start := notionapi.Date(time.Date(2022, time.May, day, 0, 0, 0, 0, time.UTC))
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Oleh":     &notionapi.PeopleProperty{People: []notionapi.User{{ID: "user-1"}}},
			"Tanggal":  &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}},
			"Nama":     &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "Nasi goreng"}}},
			"Nominal":  &notionapi.NumberProperty{Number: value},
			"Jumlah":   &notionapi.NumberProperty{Number: 1},
			"Kategori": &notionapi.SelectProperty{Select: notionapi.Option{Name: category}},
			"Tipe":     &notionapi.SelectProperty{Select: notionapi.Option{Name: kind}},
		},
	}
}

func TestExtractRecord(t *testing.T) {
	rec, err := ExtractRecord(testPage("page-1", 3, -25000.5, "Makan", "Pengeluaran"), DefaultPropertyNames())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "page-1" || rec.UserID != "user-1" {
		t.Errorf("ids = %q/%q", rec.ID, rec.UserID)
	}
	if !rec.Date.Equal(core.NewDate(2022, 5, 3).Time) {
		t.Errorf("date = %v", rec.Date)
	}
	if rec.Description != "Nasi goreng" || rec.Category != "Makan" || rec.Type != "Pengeluaran" {
		t.Errorf("unexpected text fields: %+v", rec)
	}
	want, _ := core.ParseMoney("-25000.5")
	if !rec.Value.Equal(want) {
		t.Errorf("value = %s, want %s", rec.Value, want)
	}
}

func TestExtractRecord_MissingFields(t *testing.T) {
	names := DefaultPropertyNames()
	tests := []struct {
		name   string
		mutate func(notionapi.Properties)
		field  string
	}{
		{"absent owner", func(p notionapi.Properties) { delete(p, "Oleh") }, "Oleh"},
		{"empty people list", func(p notionapi.Properties) { p["Oleh"] = &notionapi.PeopleProperty{} }, "Oleh"},
		{"no start date", func(p notionapi.Properties) { p["Tanggal"] = &notionapi.DateProperty{} }, "Tanggal"},
		{"empty title", func(p notionapi.Properties) { p["Nama"] = &notionapi.TitleProperty{} }, "Nama"},
		{"wrong type", func(p notionapi.Properties) {
			p["Nominal"] = &notionapi.RichTextProperty{Type: notionapi.PropertyTypeRichText}
		}, "Nominal"},
		{"empty select", func(p notionapi.Properties) { p["Tipe"] = &notionapi.SelectProperty{} }, "Tipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := testPage("page-9", 1, 10, "Makan", "Pengeluaran")
			tt.mutate(page.Properties)

			_, err := ExtractRecord(page, names)
			var mfe *core.MissingFieldError
			if !errors.As(err, &mfe) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if mfe.RecordID != "page-9" || mfe.Field != tt.field {
				t.Errorf("got record %q field %q, want page-9 %q", mfe.RecordID, mfe.Field, tt.field)
			}
		})
	}
}

func TestClient_FetchFollowsCursor(t *testing.T) {
	fake := &fakeQuerier{responses: []*notionapi.DatabaseQueryResponse{
		{
			Results:    []notionapi.Page{testPage("a", 1, -100, "Makan", "Pengeluaran")},
			HasMore:    true,
			NextCursor: "c1",
		},
		{
			Results: []notionapi.Page{
				testPage("b", 2, 200, "Gaji", "Pemasukan"),
				testPage("c", 3, -300, "Makan", "Pengeluaran"),
			},
		},
	}}
	client := NewClientWithQuerier(fake, DefaultPropertyNames(), quietLogger())

	records, err := client.Fetch(context.Background(), "db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if len(fake.cursors) != 2 || fake.cursors[0] != "" || fake.cursors[1] != "c1" {
		t.Errorf("cursors = %v", fake.cursors)
	}
}

func TestClient_FetchNetworkError(t *testing.T) {
	cause := errors.New("connection reset")
	client := NewClientWithQuerier(&fakeQuerier{err: cause}, DefaultPropertyNames(), quietLogger())

	_, err := client.Fetch(context.Background(), "db")
	var ne *core.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("network error does not wrap cause: %v", err)
	}
}

func TestClient_FetchRepeatedCursor(t *testing.T) {
	page := &notionapi.DatabaseQueryResponse{HasMore: true, NextCursor: "loop"}
	fake := &fakeQuerier{responses: []*notionapi.DatabaseQueryResponse{page, page, page}}
	client := NewClientWithQuerier(fake, DefaultPropertyNames(), quietLogger())

	if _, err := client.Fetch(context.Background(), "db"); err == nil {
		t.Fatal("expected error for repeated cursor")
	}
}

func TestClient_FetchStopsOnMissingField(t *testing.T) {
	bad := testPage("broken", 1, 10, "Makan", "Pengeluaran")
	delete(bad.Properties, "Kategori")
	fake := &fakeQuerier{responses: []*notionapi.DatabaseQueryResponse{
		{Results: []notionapi.Page{testPage("ok", 1, 10, "Makan", "Pengeluaran"), bad}},
	}}
	client := NewClientWithQuerier(fake, DefaultPropertyNames(), quietLogger())

	records, err := client.Fetch(context.Background(), "db")
	var mfe *core.MissingFieldError
	if !errors.As(err, &mfe) || mfe.RecordID != "broken" {
		t.Fatalf("expected MissingFieldError for broken, got %v", err)
	}
	if records != nil {
		t.Errorf("expected no partial result, got %d records", len(records))
	}
}

func TestClient_FetchWarnsOnZeroNumbers(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		qty       float64
		wantWarns []string
	}{
		{name: "both set", value: -15000, qty: 1},
		{name: "empty amount", value: 0, qty: 1, wantWarns: []string{"property=Nominal"}},
		{name: "empty amount and qty", value: 0, qty: 0, wantWarns: []string{"property=Nominal", "property=Jumlah"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := testPage("p1", 1, tt.value, "Makan", "Pengeluaran")
			page.Properties["Jumlah"] = &notionapi.NumberProperty{Number: tt.qty}
			fake := &fakeQuerier{responses: []*notionapi.DatabaseQueryResponse{{Results: []notionapi.Page{page}}}}

			var buf bytes.Buffer
			client := NewClientWithQuerier(fake, DefaultPropertyNames(), log.New(log.Config{Output: &buf}))
			records, err := client.Fetch(context.Background(), "db")
			if err != nil || len(records) != 1 {
				t.Fatalf("fetch: %v %v", records, err)
			}

			out := buf.String()
			if got := strings.Count(out, "level=WARN"); got != len(tt.wantWarns) {
				t.Fatalf("warnings = %d, want %d:\n%s", got, len(tt.wantWarns), out)
			}
			for _, want := range tt.wantWarns {
				if !strings.Contains(out, want) || !strings.Contains(out, "record_id=p1") {
					t.Errorf("missing %q with record id:\n%s", want, out)
				}
			}
		})
	}
}
