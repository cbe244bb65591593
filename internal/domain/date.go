package domain

import "time"

// DateLayout is the canonical calendar-date format used for invoice,
// bill, booking, expense, and ledger dates.
const DateLayout = "2006-01-02"

// ParseDate validates a calendar date string and returns its canonical
// form. Returns a ValidationError for anything time.Parse rejects.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", Validation("date", "must be formatted YYYY-MM-DD")
	}
	return t.Format(DateLayout), nil
}

// Today returns the current local date in canonical form.
func Today() string {
	return time.Now().Format(DateLayout)
}
