package lunar

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testTable(t *testing.T) *Table {
	t.Helper()

	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return table
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefault_Range(t *testing.T) {
	table := testTable(t)

	if table.MinYear() != 1900 {
		t.Errorf("MinYear() = %d, want 1900", table.MinYear())
	}
	if table.MaxYear() != 2100 {
		t.Errorf("MaxYear() = %d, want 2100", table.MaxYear())
	}
}

func TestDefault_NewYearAnchors(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		year int
		want time.Time
	}{
		{1900, date(1900, time.January, 31)},
		{1949, date(1949, time.January, 29)},
		{1984, date(1984, time.February, 2)},
		{2000, date(2000, time.February, 5)},
		{2019, date(2019, time.February, 5)},
		{2020, date(2020, time.January, 25)},
		{2021, date(2021, time.February, 12)},
		{2023, date(2023, time.January, 22)},
		{2024, date(2024, time.February, 10)},
		{2025, date(2025, time.January, 29)},
		{2050, date(2050, time.January, 23)},
	}

	for _, tt := range tests {
		info, err := table.Year(tt.year)
		if err != nil {
			t.Fatalf("Year(%d) error = %v", tt.year, err)
		}
		if !info.NewYear.Equal(tt.want) {
			t.Errorf("Year(%d).NewYear = %s, want %s", tt.year, info.NewYear.Format(time.DateOnly), tt.want.Format(time.DateOnly))
		}
	}
}

func TestDefault_LeapMonths(t *testing.T) {
	table := testTable(t)

	tests := map[int]int{
		2017: 6,
		2019: 0,
		2020: 4,
		2023: 2,
		2025: 6,
	}

	for year, want := range tests {
		info, err := table.Year(year)
		if err != nil {
			t.Fatalf("Year(%d) error = %v", year, err)
		}
		if info.LeapMonth != want {
			t.Errorf("Year(%d).LeapMonth = %d, want %d", year, info.LeapMonth, want)
		}
	}
}

func TestSolarToLunar(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		solar time.Time
		want  Date
	}{
		{date(2019, time.July, 7), Date{2019, 6, 5, false}},
		{date(2019, time.February, 4), Date{2018, 12, 30, false}},
		{date(2020, time.May, 23), Date{2020, 4, 1, true}},
		{date(2020, time.June, 21), Date{2020, 5, 1, false}},
		{date(2021, time.February, 13), Date{2021, 1, 2, false}},
		{date(2023, time.March, 22), Date{2023, 2, 1, true}},
		{date(2023, time.April, 20), Date{2023, 3, 1, false}},
		{date(2000, time.January, 1), Date{1999, 11, 25, false}},
		{date(1900, time.January, 31), Date{1900, 1, 1, false}},
		{date(2100, time.December, 31), Date{2100, 12, 1, false}},
	}

	for _, tt := range tests {
		got, err := table.SolarToLunar(tt.solar)
		if err != nil {
			t.Fatalf("SolarToLunar(%s) error = %v", tt.solar.Format(time.DateOnly), err)
		}
		if got != tt.want {
			t.Errorf("SolarToLunar(%s) = %+v, want %+v", tt.solar.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestSolarToLunar_BeforeTable(t *testing.T) {
	table := testTable(t)

	_, err := table.SolarToLunar(date(1900, time.January, 30))
	var yearErr *UnsupportedYearError
	if !errors.As(err, &yearErr) {
		t.Fatalf("SolarToLunar(1900-01-30) error = %v, want UnsupportedYearError", err)
	}
	if yearErr.Year != 1899 {
		t.Errorf("UnsupportedYearError.Year = %d, want 1899", yearErr.Year)
	}
}

func TestLunarToSolar(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name             string
		year, month, day int
		leap             bool
		want             time.Time
	}{
		{"new year", 2019, 1, 1, false, date(2019, time.February, 5)},
		{"mid year", 2019, 6, 5, false, date(2019, time.July, 7)},
		{"leap month", 2020, 4, 1, true, date(2020, time.May, 23)},
		{"month before leap", 2020, 4, 1, false, date(2020, time.April, 23)},
		{"month after leap", 2020, 5, 1, false, date(2020, time.June, 21)},
		{"last day of year", 2018, 12, 30, false, date(2019, time.February, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.LunarToSolar(tt.year, tt.month, tt.day, tt.leap)
			if err != nil {
				t.Fatalf("LunarToSolar() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("LunarToSolar(%d, %d, %d, %v) = %s, want %s",
					tt.year, tt.month, tt.day, tt.leap, got.Format(time.DateOnly), tt.want.Format(time.DateOnly))
			}
		})
	}
}

func TestLunarToSolar_Errors(t *testing.T) {
	table := testTable(t)

	t.Run("leap month on a year without one", func(t *testing.T) {
		_, err := table.LunarToSolar(2019, 6, 1, true)
		var leapErr *UnsupportedLeapMonthError
		if !errors.As(err, &leapErr) {
			t.Fatalf("error = %v, want UnsupportedLeapMonthError", err)
		}
		if leapErr.LeapMonth != 0 {
			t.Errorf("LeapMonth = %d, want 0", leapErr.LeapMonth)
		}
	})

	t.Run("leap flag on the wrong month", func(t *testing.T) {
		_, err := table.LunarToSolar(2020, 5, 1, true)
		var leapErr *UnsupportedLeapMonthError
		if !errors.As(err, &leapErr) {
			t.Fatalf("error = %v, want UnsupportedLeapMonthError", err)
		}
		if leapErr.LeapMonth != 4 {
			t.Errorf("LeapMonth = %d, want 4", leapErr.LeapMonth)
		}
	})

	t.Run("year outside table", func(t *testing.T) {
		_, err := table.LunarToSolar(1899, 1, 1, false)
		var yearErr *UnsupportedYearError
		if !errors.As(err, &yearErr) {
			t.Fatalf("error = %v, want UnsupportedYearError", err)
		}
	})

	t.Run("day past month end", func(t *testing.T) {
		// 2019 month 2 has 29 days.
		_, err := table.LunarToSolar(2019, 2, 30, false)
		var dateErr *DateError
		if !errors.As(err, &dateErr) {
			t.Fatalf("error = %v, want DateError", err)
		}
	})

	t.Run("month 13", func(t *testing.T) {
		_, err := table.LunarToSolar(2020, 13, 1, false)
		var dateErr *DateError
		if !errors.As(err, &dateErr) {
			t.Fatalf("error = %v, want DateError", err)
		}
	})
}

func TestLunarRoundTrip(t *testing.T) {
	table := testTable(t)

	for year := table.MinYear(); year <= table.MaxYear(); year++ {
		info, err := table.Year(year)
		if err != nil {
			t.Fatalf("Year(%d) error = %v", year, err)
		}

		for month := 1; month <= 12; month++ {
			length := info.Months[info.slot(month, false)]
			for _, day := range []int{1, 15, length} {
				solar, err := table.LunarToSolar(year, month, day, false)
				if err != nil {
					t.Fatalf("LunarToSolar(%d, %d, %d) error = %v", year, month, day, err)
				}
				back, err := table.SolarToLunar(solar)
				if err != nil {
					t.Fatalf("SolarToLunar(%s) error = %v", solar.Format(time.DateOnly), err)
				}
				want := Date{Year: year, Month: month, Day: day}
				if back != want {
					t.Fatalf("round trip %+v -> %s -> %+v", want, solar.Format(time.DateOnly), back)
				}
			}
		}

		if info.HasLeapMonth() {
			solar, err := table.LunarToSolar(year, info.LeapMonth, 1, true)
			if err != nil {
				t.Fatalf("LunarToSolar(%d, leap %d) error = %v", year, info.LeapMonth, err)
			}
			back, err := table.SolarToLunar(solar)
			if err != nil {
				t.Fatalf("SolarToLunar(%s) error = %v", solar.Format(time.DateOnly), err)
			}
			if !back.IsLeap || back.Month != info.LeapMonth {
				t.Errorf("leap round trip for %d = %+v", year, back)
			}
		}
	}
}

func TestLoad_RejectsInconsistentAnchors(t *testing.T) {
	const data = `
[[years]]
year = 2019
new_year = "2019-02-05"
leap_month = 0
months = [30, 29, 30, 29, 30, 29, 29, 30, 29, 29, 30, 30]

[[years]]
year = 2020
new_year = "2020-01-26"
leap_month = 4
months = [29, 30, 30, 30, 29, 30, 29, 29, 30, 29, 30, 29, 30]
`
	_, err := Load(strings.NewReader(data))
	if err == nil {
		t.Fatal("Load() error = nil, want anchor mismatch")
	}
	if !strings.Contains(err.Error(), "2020 begins on 2020-01-26") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_RejectsBadMonthCount(t *testing.T) {
	const data = `
[[years]]
year = 2020
new_year = "2020-01-25"
leap_month = 4
months = [29, 30, 30, 30, 29, 30, 29, 29, 30, 29, 30, 29]
`
	if _, err := Load(strings.NewReader(data)); err == nil {
		t.Fatal("Load() error = nil, want month count error")
	}
}

func TestDateNames(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{Date{2019, 6, 5, false}, "二〇一九年六月初五"},
		{Date{2020, 4, 1, true}, "二〇二〇年閏四月初一"},
		{Date{2021, 1, 10, false}, "二〇二一年正月初十"},
		{Date{2023, 11, 20, false}, "二〇二三年冬月二十"},
		{Date{2023, 12, 23, false}, "二〇二三年臘月廿三"},
		{Date{2023, 12, 30, false}, "二〇二三年臘月三十"},
		{Date{2000, 10, 15, false}, "二〇〇〇年十月十五"},
	}

	for _, tt := range tests {
		if got := tt.date.String(); got != tt.want {
			t.Errorf("%+v.String() = %s, want %s", tt.date, got, tt.want)
		}
	}
}
