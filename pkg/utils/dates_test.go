package utils

import (
	"strings"
	"testing"
	"time"
)

func TestDurationHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
		wantErr    bool
	}{
		{"09:00", "10:30", 1.5, false},
		{"10:00", "11:00", 1, false},
		{"08:15", "08:30", 0.25, false},
		{"00:00", "23:59", 23.983333333333334, false},
		{"10:00", "10:00", 0, true},
		{"11:00", "10:00", 0, true},
		{"9am", "10:00", 0, true},
		{"10:00", "", 0, true},
		{"25:00", "26:00", 0, true},
		{"10:61", "11:00", 0, true},
	}

	for _, tc := range cases {
		got, err := DurationHours(tc.start, tc.end)
		if tc.wantErr {
			if err == nil {
				t.Errorf("DurationHours(%q, %q): expected error, got %v", tc.start, tc.end, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DurationHours(%q, %q): unexpected error %v", tc.start, tc.end, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DurationHours(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestWeekDatesStartsOnMonday(t *testing.T) {
	anchors := []time.Time{
		time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), // Monday
		time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC), // Wednesday
		time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC), // Sunday
	}

	for _, anchor := range anchors {
		week := WeekDates(anchor)
		if week[0].Weekday() != time.Monday {
			t.Errorf("WeekDates(%v): first day is %v, want Monday", anchor, week[0].Weekday())
		}
		for i := 1; i < 7; i++ {
			if !week[i].Equal(week[i-1].AddDate(0, 0, 1)) {
				t.Errorf("WeekDates(%v): day %d is not consecutive", anchor, i)
			}
		}
		anchorDay := anchor.Format("2006-01-02")
		found := false
		for _, day := range week {
			if day.Format("2006-01-02") == anchorDay {
				found = true
			}
		}
		if !found {
			t.Errorf("WeekDates(%v): anchor date missing from week", anchor)
		}
	}
}

func TestWeekDatesSundayMapsToItsOwnWeek(t *testing.T) {
	sunday := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)
	week := WeekDates(sunday)
	if got := week[0].Format("2006-01-02"); got != "2026-03-16" {
		t.Errorf("expected Monday 2026-03-16, got %s", got)
	}
	if got := week[6].Format("2006-01-02"); got != "2026-03-22" {
		t.Errorf("expected Sunday 2026-03-22 as last day, got %s", got)
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)); got != "2026-01" {
		t.Errorf("MonthKey = %s, want 2026-01", got)
	}
}

func TestInvoiceNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 5, 7, 0, time.UTC)
	got := InvoiceNumber(now)
	if got != "RG-20260316-090507" {
		t.Errorf("InvoiceNumber = %s, want RG-20260316-090507", got)
	}
	if !strings.HasPrefix(got, "RG-") {
		t.Errorf("InvoiceNumber missing RG- prefix: %s", got)
	}
}
