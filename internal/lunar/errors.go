package lunar

import "fmt"

// UnsupportedYearError is returned for years outside the loaded table.
type UnsupportedYearError struct {
	Year     int
	Min, Max int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("year %d is outside the supported range %d-%d", e.Year, e.Min, e.Max)
}

// UnsupportedLeapMonthError is returned when a leap-month conversion is
// requested for a month that is not the year's leap month.
type UnsupportedLeapMonthError struct {
	Year      int
	Month     int
	LeapMonth int // 0 when the year has none
}

func (e *UnsupportedLeapMonthError) Error() string {
	if e.LeapMonth == 0 {
		return fmt.Sprintf("lunar year %d has no leap month", e.Year)
	}
	return fmt.Sprintf("lunar year %d has leap month %d, not %d", e.Year, e.LeapMonth, e.Month)
}

// DateError is returned for lunar months or days that do not exist.
type DateError struct {
	Year, Month, Day int
	Reason           string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid lunar date %d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Reason)
}
