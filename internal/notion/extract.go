package notion

import (
	"fmt"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"cashflow/internal/core"
)

// PropertyNames maps record fields to the property names used in the database.
type PropertyNames struct {
	Owner    string
	Date     string
	Title    string
	Value    string
	Qty      string
	Category string
	Type     string
}

// DefaultPropertyNames returns the names of the household budget template.
func DefaultPropertyNames() PropertyNames {
	return PropertyNames{
		Owner:    "Oleh",
		Date:     "Tanggal",
		Title:    "Nama",
		Value:    "Nominal",
		Qty:      "Jumlah",
		Category: "Kategori",
		Type:     "Tipe",
	}
}

// ExtractRecord flattens the property bag of one database page. A property
// that is absent, has an unexpected type or holds no value is reported as a
// *core.MissingFieldError carrying the page id.
func ExtractRecord(page notionapi.Page, names PropertyNames) (core.Record, error) {
	id := string(page.ID)
	props := page.Properties

	people, err := property[*notionapi.PeopleProperty](props, id, names.Owner)
	if err != nil {
		return core.Record{}, err
	}
	if len(people.People) == 0 {
		return core.Record{}, missing(id, names.Owner, "people list is empty")
	}

	date, err := property[*notionapi.DateProperty](props, id, names.Date)
	if err != nil {
		return core.Record{}, err
	}
	if date.Date == nil || date.Date.Start == nil {
		return core.Record{}, missing(id, names.Date, "no start date")
	}

	title, err := property[*notionapi.TitleProperty](props, id, names.Title)
	if err != nil {
		return core.Record{}, err
	}
	if len(title.Title) == 0 {
		return core.Record{}, missing(id, names.Title, "title is empty")
	}

	value, err := property[*notionapi.NumberProperty](props, id, names.Value)
	if err != nil {
		return core.Record{}, err
	}
	qty, err := property[*notionapi.NumberProperty](props, id, names.Qty)
	if err != nil {
		return core.Record{}, err
	}

	category, err := selectName(props, id, names.Category)
	if err != nil {
		return core.Record{}, err
	}
	recordType, err := selectName(props, id, names.Type)
	if err != nil {
		return core.Record{}, err
	}

	return core.Record{
		ID:          id,
		UserID:      string(people.People[0].ID),
		Date:        core.DateOf(time.Time(*date.Date.Start)),
		Description: title.Title[0].PlainText,
		Value:       core.MoneyFromFloat(value.Number),
		Qty:         core.MoneyFromFloat(qty.Number),
		Category:    category,
		Type:        recordType,
	}, nil
}

func property[T notionapi.Property](props notionapi.Properties, recordID, name string) (T, error) {
	var zero T
	raw, ok := props[name]
	if !ok || raw == nil {
		return zero, missing(recordID, name, "")
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, missing(recordID, name, fmt.Sprintf("unexpected property type %q", raw.GetType()))
	}
	return typed, nil
}

func selectName(props notionapi.Properties, recordID, name string) (string, error) {
	sel, err := property[*notionapi.SelectProperty](props, recordID, name)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(sel.Select.Name) == "" {
		return "", missing(recordID, name, "no option selected")
	}
	return sel.Select.Name, nil
}

func missing(recordID, field, reason string) *core.MissingFieldError {
	return &core.MissingFieldError{RecordID: recordID, Field: field, Reason: reason}
}
