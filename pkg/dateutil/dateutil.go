package dateutil

import (
	"time"
)

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of calendar days in the given month
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// BeginningOfMonth returns the first instant of the month in UTC
func BeginningOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month in UTC
func EndOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, DaysInMonth(year, month), 23, 59, 59, 999999999, time.UTC)
}

// IsWeekend reports whether the day falls on Saturday or Sunday
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkingDaysInMonth counts Monday-to-Friday days in the month. Public holidays are
// not known here; callers that track them pass explicit standard days instead.
func WorkingDaysInMonth(year int, month time.Month) int {
	count := 0
	day := BeginningOfMonth(year, month)
	for day.Month() == month {
		if !IsWeekend(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
