// Package lunar converts between Gregorian dates and the Chinese lunar
// calendar using a per-year table of month lengths, leap months and Lunar
// New Year anchors.
package lunar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/carlosjhr64/jd"
)

//go:embed data/years.toml
var embeddedYears []byte

// Year is one row of the lunar table.
type Year struct {
	Year      int
	NewYear   time.Time // Gregorian date of 正月初一, at 00:00 UTC
	LeapMonth int       // 0 when the year has no leap month
	Months    []int     // month lengths in calendar order, leap month after the month it repeats
}

// Days returns the length of the lunar year.
func (y Year) Days() int {
	total := 0
	for _, n := range y.Months {
		total += n
	}
	return total
}

// HasLeapMonth reports whether the year contains a thirteenth month.
func (y Year) HasLeapMonth() bool {
	return y.LeapMonth > 0
}

// slot returns the index into Months for the given month. Months after the
// leap month are shifted by one; the leap month itself sits one past its
// nominal month.
func (y Year) slot(month int, leap bool) int {
	i := month - 1
	if y.HasLeapMonth() && (month > y.LeapMonth || (leap && month == y.LeapMonth)) {
		i++
	}
	return i
}

// Table is an immutable, year-indexed lunar dataset.
type Table struct {
	first int
	years []Year
}

type tableFile struct {
	Years []yearRecord `toml:"years"`
}

type yearRecord struct {
	Year      int    `toml:"year"`
	NewYear   string `toml:"new_year"`
	LeapMonth int    `toml:"leap_month"`
	Months    []int  `toml:"months"`
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(bytes.NewReader(embeddedYears))
})

// Default returns the embedded 1900-2100 table. It is parsed once and
// shared; callers must not modify the returned rows.
func Default() (*Table, error) {
	return defaultTable()
}

// LoadFile reads a table from a TOML file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lunar table: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses a TOML lunar table and checks that it is contiguous and
// internally consistent: each year's New Year plus its length must land on
// the next year's New Year.
func Load(r io.Reader) (*Table, error) {
	var file tableFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode lunar table: %w", err)
	}
	if len(file.Years) == 0 {
		return nil, errors.New("lunar table has no years")
	}

	t := &Table{
		first: file.Years[0].Year,
		years: make([]Year, 0, len(file.Years)),
	}

	for i, rec := range file.Years {
		year, err := rec.toYear()
		if err != nil {
			return nil, err
		}
		if year.Year != t.first+i {
			return nil, fmt.Errorf("lunar table: year %d out of sequence, want %d", year.Year, t.first+i)
		}
		if i > 0 {
			prev := t.years[i-1]
			if dayNumber(prev.NewYear)+prev.Days() != dayNumber(year.NewYear) {
				return nil, fmt.Errorf("lunar table: year %d ends on %s but %d begins on %s",
					prev.Year, addDays(prev.NewYear, prev.Days()).Format(time.DateOnly),
					year.Year, year.NewYear.Format(time.DateOnly))
			}
		}
		t.years = append(t.years, year)
	}

	return t, nil
}

func (rec yearRecord) toYear() (Year, error) {
	newYear, err := time.Parse(time.DateOnly, rec.NewYear)
	if err != nil {
		return Year{}, fmt.Errorf("lunar table: year %d: new_year: %w", rec.Year, err)
	}
	if rec.LeapMonth < 0 || rec.LeapMonth > 12 {
		return Year{}, fmt.Errorf("lunar table: year %d: leap_month %d out of range", rec.Year, rec.LeapMonth)
	}

	want := 12
	if rec.LeapMonth > 0 {
		want = 13
	}
	if len(rec.Months) != want {
		return Year{}, fmt.Errorf("lunar table: year %d: %d months, want %d", rec.Year, len(rec.Months), want)
	}
	for i, n := range rec.Months {
		if n != 29 && n != 30 {
			return Year{}, fmt.Errorf("lunar table: year %d: month slot %d has %d days", rec.Year, i+1, n)
		}
	}

	return Year{
		Year:      rec.Year,
		NewYear:   newYear,
		LeapMonth: rec.LeapMonth,
		Months:    append([]int(nil), rec.Months...),
	}, nil
}

// MinYear returns the first lunar year in the table.
func (t *Table) MinYear() int {
	return t.first
}

// MaxYear returns the last lunar year in the table.
func (t *Table) MaxYear() int {
	return t.first + len(t.years) - 1
}

// Year returns the row for lunar year y.
func (t *Table) Year(y int) (Year, error) {
	if y < t.MinYear() || y > t.MaxYear() {
		return Year{}, &UnsupportedYearError{Year: y, Min: t.MinYear(), Max: t.MaxYear()}
	}
	return t.years[y-t.first], nil
}

// dayNumber returns the Julian day number of t's calendar date.
func dayNumber(t time.Time) int {
	return jd.YMD2J(t.Year(), int(t.Month()), t.Day())
}

func fromDayNumber(n int) time.Time {
	y, m, d := jd.J2YMD(n)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return fromDayNumber(dayNumber(t) + days)
}
