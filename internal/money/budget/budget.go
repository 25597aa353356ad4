// Package budget holds the integer-cents arithmetic and day-window math used
// by the boost payment lifecycle. All amounts are minor units of a single
// currency; there is no float money anywhere in the core.
package budget

import (
	"fmt"
	"time"
)

// Day is the unit the boost window is measured in. Calendar days, not
// business days.
const Day = 24 * time.Hour

// Total computes the full charge for a boost: daily budget times duration.
// Computed once at campaign creation and stored, never recomputed at checkout
// time, so the amount charged always matches what was quoted.
func Total(dailyBudgetCents int64, durationDays int) int64 {
	return dailyBudgetCents * int64(durationDays)
}

// FormatUSD renders cents as a human-readable dollar figure for line items
// and receipts, e.g. 1050 -> "$10.50".
func FormatUSD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Window derives the active window from the moment payment was confirmed.
func Window(paidAt time.Time, durationDays int) (start, end time.Time) {
	start = paidAt
	end = paidAt.Add(time.Duration(durationDays) * Day)
	return start, end
}

// DaysRemaining reports how many whole-or-partial days are left until end,
// never negative. A partial day counts as a full remaining day.
func DaysRemaining(end, now time.Time) int {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / Day)
	if remaining%Day > 0 {
		days++
	}
	return days
}
