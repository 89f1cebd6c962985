package core

// CategoryTotal is the sum of expenses for one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
	Display  string `json:"display"`
}

// DailyTotal is the sum of expenses for one calendar day.
type DailyTotal struct {
	Date      Date   `json:"-"`
	DateLabel string `json:"date"`
	Amount    Money  `json:"amount"`
	Display   string `json:"display"`
}
