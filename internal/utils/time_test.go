package utils

import (
	"testing"
	"time"
)

func TestMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "afternoon truncates to midnight",
			in:   time.Date(2025, 3, 10, 15, 42, 7, 12345, time.UTC),
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already midnight is unchanged",
			in:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "day of DST spring forward",
			in:   time.Date(2025, 3, 9, 13, 0, 0, 0, loc),
			want: time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Midnight(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Midnight(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	if !SameDay(base, base.Add(10*time.Hour)) {
		t.Error("SameDay() = false for two times on the same date")
	}
	if SameDay(base, base.Add(24*time.Hour)) {
		t.Error("SameDay() = true across a date boundary")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "consecutive days late to early",
			a:    time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "skipped day",
			a:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "reversed order is negative",
			a:    time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			want: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	// US DST starts 2026-03-08 (23-hour day) and ends 2026-11-01 (25-hour
	// day). The raw hour difference between midnights is 23 or 25 there,
	// which must still count as exactly one calendar day.
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "consecutive days across spring forward",
			a:    time.Date(2026, 3, 8, 12, 0, 0, 0, loc),
			b:    time.Date(2026, 3, 9, 12, 0, 0, 0, loc),
			want: 1,
		},
		{
			name: "two day gap across spring forward",
			a:    time.Date(2026, 3, 8, 12, 0, 0, 0, loc),
			b:    time.Date(2026, 3, 10, 12, 0, 0, 0, loc),
			want: 2,
		},
		{
			name: "consecutive days across fall back",
			a:    time.Date(2026, 10, 31, 12, 0, 0, 0, loc),
			b:    time.Date(2026, 11, 1, 12, 0, 0, 0, loc),
			want: 1,
		},
		{
			name: "two day gap across fall back",
			a:    time.Date(2026, 10, 31, 12, 0, 0, 0, loc),
			b:    time.Date(2026, 11, 2, 12, 0, 0, 0, loc),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	in := time.Date(2025, 1, 5, 18, 30, 0, 0, time.UTC)
	if got := DateString(in); got != "2025-01-05" {
		t.Errorf("DateString() = %q, want %q", got, "2025-01-05")
	}
}
