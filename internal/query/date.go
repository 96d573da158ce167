package query

import "github.com/sadopc/modus/internal/model"

// FormatDisplayDate labels a calendar date relative to today: "Today",
// "Yesterday", or a short weekday/month/day label such as "Mon, Jan 8".
// Unparseable dates are returned unchanged.
func FormatDisplayDate(date, today string) string {
	if date == today {
		return "Today"
	}
	if yesterday, err := model.AddDays(today, -1); err == nil && date == yesterday {
		return "Yesterday"
	}
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}
