// Package duedate turns a task's due date into the label shown on the
// dashboard.
package duedate

import (
	"math"
	"strconv"
	"time"
)

// Label computes the display label for a due date relative to now.
// The whole-day delta floors toward negative infinity; a due date earlier
// today lands on day -1, which reads "Today". Anything further back is
// "Overdue", and a positive delta is the number of whole days remaining.
// Note this is wall-clock subtraction, so a due date at midnight tonight
// flips from a count to "Overdue" as the day advances.
func Label(due, now time.Time) string {
	days := int(math.Floor(due.Sub(now).Hours() / 24))
	switch {
	case days > 0:
		return strconv.Itoa(days)
	case days+1 == 0:
		return "Today"
	default:
		return "Overdue"
	}
}
