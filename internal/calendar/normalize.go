package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/zapponejosh/lunar-api/internal/ganzhi"
)

// Input is a raw calendar request. Every field is free text as typed by a
// user; Time and Reference may be empty.
type Input struct {
	Year      string
	Month     string
	Day       string
	Time      string
	Reference string
}

// Date is a validated Gregorian date and hour.
type Date struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// HourString returns the hour as two digits.
func (d Date) HourString() string {
	return fmt.Sprintf("%02d", d.Hour)
}

// Time returns the date at 00:00 UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the calendar date of t with the given hour.
func DateOf(t time.Time, hour int) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d, Hour: hour}
}

// Normalizer validates raw input against the supported year range.
type Normalizer struct {
	MinYear int
	MaxYear int

	// Now supplies the hour used when no time is given.
	Now func() time.Time
}

// Normalize validates in and returns the date it names. The reference
// field is not examined; see ParseReference.
func (n Normalizer) Normalize(in Input) (Date, error) {
	year, err := n.number("year", in.Year)
	if err != nil {
		return Date{}, err
	}
	month, err := n.number("month", in.Month)
	if err != nil {
		return Date{}, err
	}
	day, err := n.number("day", in.Day)
	if err != nil {
		return Date{}, err
	}

	date := Date{Year: year, Month: month, Day: day}
	if err := n.Check(date); err != nil {
		return Date{}, err
	}

	date.Hour, err = n.Hour(in.Time)
	if err != nil {
		return Date{}, err
	}
	return date, nil
}

// Check validates an already numeric date, including its hour.
func (n Normalizer) Check(d Date) error {
	if d.Year < n.MinYear || d.Year > n.MaxYear {
		return &ValidationError{
			Field:  "year",
			Value:  strconv.Itoa(d.Year),
			Reason: fmt.Sprintf("supported years are %d to %d", n.MinYear, n.MaxYear),
		}
	}
	if d.Month < 1 || d.Month > 12 {
		return &ValidationError{Field: "month", Value: strconv.Itoa(d.Month), Reason: "must be between 1 and 12"}
	}
	if last := daysIn(d.Year, d.Month); d.Day < 1 || d.Day > last {
		return &ValidationError{Field: "day", Value: strconv.Itoa(d.Day), Reason: fmt.Sprintf("must be between 1 and %d", last)}
	}
	if d.Hour < 0 || d.Hour > 23 {
		return &ValidationError{Field: "time", Value: strconv.Itoa(d.Hour), Reason: "must be between 0 and 23"}
	}
	return nil
}

// Hour parses a 24-hour clock hour. An empty value means the current hour;
// 24 is accepted as an alias of midnight.
func (n Normalizer) Hour(v string) (int, error) {
	v = fold(v)
	if v == "" {
		now := time.Now
		if n.Now != nil {
			now = n.Now
		}
		return now().Hour(), nil
	}

	h, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: "time", Value: v, Reason: "not a number"}
	}
	if h < 0 || h > 24 {
		return 0, &ValidationError{Field: "time", Value: v, Reason: "must be between 0 and 24"}
	}
	return h % 24, nil
}

func (n Normalizer) number(field, v string) (int, error) {
	v = fold(v)
	if v == "" {
		return 0, &ValidationError{Field: field, Value: v, Reason: "required"}
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: v, Reason: "not a number"}
	}
	return i, nil
}

// ParseReference parses a reference given as a stem or a stem+branch pair
// (only the stem is used). ok is false when v is empty.
func ParseReference(v string) (stem ganzhi.Stem, ok bool, err error) {
	v = fold(v)
	switch utf8.RuneCountInString(v) {
	case 0:
		return 0, false, nil
	case 1:
		stem, err = ganzhi.ParseStem(v)
	case 2:
		var p ganzhi.Pillar
		p, err = ganzhi.ParsePillar(v)
		stem = p.Stem
	default:
		err = errors.New("want a stem or a stem+branch pair")
	}
	if err != nil {
		return 0, false, &ValidationError{Field: "reference", Value: v, Reason: err.Error()}
	}
	return stem, true, nil
}

func fold(v string) string {
	return strings.TrimSpace(width.Fold.String(v))
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
