package utils

import "time"

// Layout the backend uses for created_at / finished_at values
const backendTimeLayout = time.RFC3339

// displayTimeLayout matches the pt-BR date format the dashboard shows
const displayTimeLayout = "02/01/2006 15:04:05"

// FormatDateTime renders a backend timestamp in the pt-BR display
// format. Unparseable values are returned unchanged so bad server data
// still shows up instead of disappearing.
func FormatDateTime(value string) string {
	if value == "" {
		return ""
	}

	t, err := time.Parse(backendTimeLayout, value)
	if err != nil {
		// The backend omits the timezone on some rows
		t, err = time.Parse("2006-01-02T15:04:05", value)
		if err != nil {
			return value
		}
	}
	return t.Format(displayTimeLayout)
}
