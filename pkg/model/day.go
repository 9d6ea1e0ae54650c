package model

import "strings"

type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
	Saturday  Day = "SATURDAY"
	Sunday    Day = "SUNDAY"

	// DayOnline marks a placement that holds no day in the calendar.
	DayOnline Day = "ONLINE"
)

// Week lists the weekdays in calendar order, Monday first.
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// AllSentinel stands for "no restriction" in requested days and times.
const AllSentinel = "ALL"

// ParseDays splits a comma separated day list. The ALL sentinel (or an empty
// value) expands to the whole week. Order is preserved as given.
func ParseDays(s string) []Day {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == AllSentinel {
		return append([]Day(nil), Week...)
	}
	var days []Day
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		days = append(days, Day(part))
	}
	return days
}

// JoinDays renders a day list the way it is echoed in failure reports.
func JoinDays(days []Day) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
