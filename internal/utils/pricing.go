package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a UTC time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", dateStr, err)
	}
	return t, nil
}

// RentalDays returns the number of billable days in [start, end), rounding
// partial days up. The end date is exclusive: Jan 1 to Jan 4 is 3 days.
func RentalDays(start, end time.Time) int64 {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return 0
	}
	days := int64(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}

// RentalCostCents computes the charge for one rental unit: the daily rate
// times the billable day count.
func RentalCostCents(dailyRateCents int64, start, end time.Time) int64 {
	return dailyRateCents * RentalDays(start, end)
}
