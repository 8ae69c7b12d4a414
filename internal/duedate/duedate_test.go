package duedate

import (
	"testing"
	"time"
)

func TestLabel(t *testing.T) {
	// Fixed reference point mid-morning, so the day-boundary behavior is
	// deterministic.
	now := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{
			name: "far future counts whole days",
			due:  time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
			want: "9",
		},
		{
			name: "due earlier today is Today",
			due:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			want: "Today",
		},
		{
			name: "past due date is Overdue",
			due:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			want: "Overdue",
		},
		{
			name: "exactly one day behind is still Today",
			due:  now.Add(-24 * time.Hour),
			want: "Today",
		},
		{
			name: "just over one day behind is Overdue",
			due:  now.Add(-25 * time.Hour),
			want: "Overdue",
		},
		{
			// Wall-clock subtraction, not a calendar diff: midnight
			// tomorrow is less than 24h away, so the floored day count
			// is 0 and the label falls through to Overdue.
			name: "midnight tomorrow falls through to Overdue",
			due:  time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
			want: "Overdue",
		},
		{
			name: "exact same instant is Overdue",
			due:  now,
			want: "Overdue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Label(tt.due, now)
			if got != tt.want {
				t.Fatalf("Label(%v, %v) = %q, want %q", tt.due, now, got, tt.want)
			}
		})
	}
}

func TestLabelFutureDueDate(t *testing.T) {
	// 2098-12-25 12:00 to 2099-01-01 00:00 is six and a half days; the
	// floored whole-day count is 6.
	now := time.Date(2098, 12, 25, 12, 0, 0, 0, time.UTC)
	due := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

	got := Label(due, now)
	if want := "6"; got != want {
		t.Fatalf("Label(%v, %v) = %q, want %q", due, now, got, want)
	}
}
