package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DurationHours returns the span between two "HH:MM" wall-clock times in
// fractional hours. Sessions never span midnight, so end must be strictly
// after start.
func DurationHours(start, end string) (float64, error) {
	startMin, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	endMin, err := parseClock(end)
	if err != nil {
		return 0, err
	}
	if endMin <= startMin {
		return 0, fmt.Errorf("end time %s is not after start time %s", end, start)
	}
	return float64(endMin-startMin) / 60, nil
}

func parseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return hours*60 + minutes, nil
}

// WeekDates returns the seven dates of the anchor's calendar week, Monday
// first. time.Weekday numbers Sunday as 0, so Sunday sits six days after its
// own week's Monday.
func WeekDates(anchor time.Time) [7]time.Time {
	offset := int(anchor.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	monday := anchor.AddDate(0, 0, -offset)
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, anchor.Location())

	var week [7]time.Time
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// MonthKey returns the stable "YYYY-MM" grouping key for a date.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// InvoiceNumber derives an invoice identifier from the current time. Two
// invoices generated within the same second share a number; callers needing
// strict uniqueness must serialize generation per trainer.
func InvoiceNumber(now time.Time) string {
	return "RG-" + now.Format("20060102-150405")
}
