package tracking

import (
	"strconv"
	"strings"
	"time"
)

// ParseClockLabel turns a 12-hour clock label such as "03:30 PM" into an
// absolute time on the same calendar day as now. Empty or malformed labels
// fall back to now itself, so callers treat the order as neither clearly
// complete nor overdue.
func ParseClockLabel(label string, now time.Time) time.Time {
	label = strings.TrimSpace(label)
	if label == "" {
		return now
	}

	fields := strings.Fields(label)
	if len(fields) != 2 {
		return now
	}
	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return now
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return now
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return now
	}

	switch strings.ToUpper(fields[1]) {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return now
	}

	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

// FormatClockLabel renders t the way the backend writes delivery times.
func FormatClockLabel(t time.Time) string {
	return t.Format("03:04 PM")
}
