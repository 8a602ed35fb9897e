package calendar

import (
	"errors"
	"testing"
	"time"
)

func testNormalizer() Normalizer {
	return Normalizer{
		MinYear: 1900,
		MaxYear: 2100,
		Now:     func() time.Time { return time.Date(2024, 5, 1, 15, 4, 0, 0, time.UTC) },
	}
}

func TestNormalize(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name string
		in   Input
		want Date
	}{
		{"padded", Input{Year: "2019", Month: "07", Day: "07", Time: "09"}, Date{2019, 7, 7, 9}},
		{"unpadded", Input{Year: "2019", Month: "7", Day: "7", Time: "9"}, Date{2019, 7, 7, 9}},
		{"full width", Input{Year: "２０２１", Month: "０２", Day: "１３", Time: "２３"}, Date{2021, 2, 13, 23}},
		{"whitespace", Input{Year: " 2021 ", Month: "2\n", Day: "\t13", Time: " 0 "}, Date{2021, 2, 13, 0}},
		{"24 is midnight", Input{Year: "2021", Month: "2", Day: "13", Time: "24"}, Date{2021, 2, 13, 0}},
		{"default hour", Input{Year: "2021", Month: "2", Day: "13"}, Date{2021, 2, 13, 15}},
		{"leap day", Input{Year: "2020", Month: "2", Day: "29", Time: "12"}, Date{2020, 2, 29, 12}},
		{"upper bound", Input{Year: "2100", Month: "12", Day: "31", Time: "0"}, Date{2100, 12, 31, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"missing year", Input{Month: "1", Day: "1"}, "year"},
		{"year not a number", Input{Year: "二〇一九", Month: "1", Day: "1"}, "year"},
		{"year below table", Input{Year: "1899", Month: "12", Day: "31"}, "year"},
		{"year above table", Input{Year: "2101", Month: "1", Day: "1"}, "year"},
		{"month zero", Input{Year: "2019", Month: "0", Day: "1"}, "month"},
		{"month thirteen", Input{Year: "2019", Month: "13", Day: "1"}, "month"},
		{"day zero", Input{Year: "2019", Month: "1", Day: "0"}, "day"},
		{"not a leap year", Input{Year: "2019", Month: "2", Day: "29"}, "day"},
		{"april 31", Input{Year: "2019", Month: "4", Day: "31"}, "day"},
		{"hour 25", Input{Year: "2019", Month: "4", Day: "1", Time: "25"}, "time"},
		{"negative hour", Input{Year: "2019", Month: "4", Day: "1", Time: "-1"}, "time"},
		{"hour text", Input{Year: "2019", Month: "4", Day: "1", Time: "noon"}, "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Normalize() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestDateStrings(t *testing.T) {
	d := Date{Year: 2019, Month: 7, Day: 7, Hour: 9}
	if got := d.String(); got != "2019-07-07" {
		t.Errorf("String() = %q, want 2019-07-07", got)
	}
	if got := d.HourString(); got != "09" {
		t.Errorf("HourString() = %q, want 09", got)
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"", "", false},
		{"  ", "", false},
		{"壬", "壬", true},
		{"壬子", "壬", true},
		{" 甲午 ", "甲", true},
	}
	for _, tt := range tests {
		stem, ok, err := ParseReference(tt.in)
		if err != nil {
			t.Errorf("ParseReference(%q) error = %v", tt.in, err)
			continue
		}
		if ok != tt.wantOK || (ok && stem.String() != tt.want) {
			t.Errorf("ParseReference(%q) = %v, %v, want %s, %v", tt.in, stem, ok, tt.want, tt.wantOK)
		}
	}

	for _, bad := range []string{"子", "甲丑", "壬子年", "x"} {
		var verr *ValidationError
		if _, _, err := ParseReference(bad); !errors.As(err, &verr) || verr.Field != "reference" {
			t.Errorf("ParseReference(%q) error = %v, want reference ValidationError", bad, err)
		}
	}
}
