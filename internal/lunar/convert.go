package lunar

import (
	"time"
)

// LunarToSolar returns the Gregorian date (00:00 UTC) of the given lunar
// date. With leap set, month names the leap month of the year, which must
// exist and equal month.
func (t *Table) LunarToSolar(year, month, day int, leap bool) (time.Time, error) {
	info, err := t.Year(year)
	if err != nil {
		return time.Time{}, err
	}

	if month < 1 || month > 12 {
		return time.Time{}, &DateError{Year: year, Month: month, Day: day, Reason: "month must be between 1 and 12"}
	}
	if leap && info.LeapMonth != month {
		return time.Time{}, &UnsupportedLeapMonthError{Year: year, Month: month, LeapMonth: info.LeapMonth}
	}

	slot := info.slot(month, leap)
	if day < 1 || day > info.Months[slot] {
		return time.Time{}, &DateError{Year: year, Month: month, Day: day, Reason: "day is outside the month"}
	}

	offset := day - 1
	for i := 0; i < slot; i++ {
		offset += info.Months[i]
	}

	return addDays(info.NewYear, offset), nil
}

// SolarToLunar returns the lunar date for the calendar date of d.
func (t *Table) SolarToLunar(d time.Time) (Date, error) {
	target := dayNumber(d)

	year := d.Year()
	info, err := t.Year(year)
	if err != nil || target < dayNumber(info.NewYear) {
		year--
		info, err = t.Year(year)
		if err != nil {
			return Date{}, err
		}
	}

	offset := target - dayNumber(info.NewYear)
	if offset < 0 || offset >= info.Days() {
		return Date{}, &UnsupportedYearError{Year: d.Year(), Min: t.MinYear(), Max: t.MaxYear()}
	}

	for i, length := range info.Months {
		if offset < length {
			return info.dateAt(i, offset+1), nil
		}
		offset -= length
	}

	// Unreachable: offset < Days() guarantees a slot was found.
	return Date{}, &UnsupportedYearError{Year: d.Year(), Min: t.MinYear(), Max: t.MaxYear()}
}

// dateAt maps a month slot back to its month number and leap flag.
func (y Year) dateAt(slot, day int) Date {
	month := slot + 1
	leap := false
	if y.HasLeapMonth() && slot >= y.LeapMonth {
		month = slot
		leap = slot == y.LeapMonth
	}
	return Date{Year: y.Year, Month: month, Day: day, IsLeap: leap}
}
