package dateutil

import (
	"testing"
	"time"
)

func TestParseAndFormat(t *testing.T) {
	got, err := Parse("2026-03-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if Format(got) != "2026-03-15" {
		t.Errorf("round trip changed the date: %s", Format(got))
	}

	if _, err := Parse("15.03.2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestFormatTruncatesTime(t *testing.T) {
	ts := time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)
	if got := Format(ts); got != "2026-08-28" {
		t.Errorf("expected 2026-08-28, got %s", got)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		days int
		want string
	}{
		{"2026-01-01", 90, "2026-04-01"},
		{"2026-01-01", 365, "2027-01-01"},
		{"2026-02-27", 2, "2026-03-01"},
		{"2024-02-27", 2, "2024-02-29"}, // leap year
		{"2026-01-10", -10, "2025-12-31"},
		{"2026-01-01", 0, "2026-01-01"},
		{"garbage", 30, ""},
		{"", 30, ""},
	}
	for _, tc := range tests {
		if got := AddDays(tc.date, tc.days); got != tc.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tc.date, tc.days, got, tc.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2026-01-01", "2026-01-31", 30},
		{"2026-01-31", "2026-01-01", -30},
		{"2026-05-05", "2026-05-05", 0},
		{"2026-01-01", "bad", 0},
		{"bad", "2026-01-01", 0},
	}
	for _, tc := range tests {
		if got := DaysBetween(tc.a, tc.b); got != tc.want {
			t.Errorf("DaysBetween(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIsBefore(t *testing.T) {
	today := "2026-08-28"
	tests := []struct {
		date string
		want bool
	}{
		{"2026-08-27", true},
		{"2026-08-28", false},
		{"2026-08-29", false},
		{"", false},
		{"not-a-date", false},
	}
	for _, tc := range tests {
		if got := IsBefore(tc.date, today); got != tc.want {
			t.Errorf("IsBefore(%q, %q) = %v, want %v", tc.date, today, got, tc.want)
		}
	}
}
