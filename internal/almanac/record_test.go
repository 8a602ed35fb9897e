package almanac

import (
	"errors"
	"testing"
	"time"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		term Term
		at   time.Time
	}{
		{"plain", "2019年小暑 2019年07月07日 17:20:25", MinorHeat, time.Date(2019, 7, 7, 17, 20, 25, 0, time.UTC)},
		{"single digit fields", "2021年立春 2021年2月3日 22:58:39", StartOfSpring, time.Date(2021, 2, 3, 22, 58, 39, 0, time.UTC)},
		{"full width", "２０１９年夏至　２０１９年０６月２１日　２３：５４：０９", SummerSolstice, time.Date(2019, 6, 21, 23, 54, 9, 0, time.UTC)},
		{"surrounding space", "  2018年冬至 2018年12月22日 06:21:41\n", WinterSolstice, time.Date(2018, 12, 22, 6, 21, 41, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecord(tt.line)
			if err != nil {
				t.Fatalf("ParseRecord(%q) error = %v", tt.line, err)
			}
			if rec.Term != tt.term {
				t.Errorf("Term = %v, want %v", rec.Term, tt.term)
			}
			if !rec.At.Equal(tt.at) {
				t.Errorf("At = %v, want %v", rec.At, tt.at)
			}
		})
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"empty", "", "record"},
		{"missing time", "2019年小暑 2019年07月07日", "record"},
		{"unknown term", "2019年小熱 2019年07月07日 17:20:25", "name"},
		{"no year prefix", "小暑 2019年07月07日 17:20:25", "name"},
		{"bad date shape", "2019年小暑 2019-07-07 17:20:25", "date"},
		{"no such day", "2019年小暑 2019年02月30日 17:20:25", "date"},
		{"bad time shape", "2019年小暑 2019年07月07日 17:20", "time"},
		{"hour out of range", "2019年小暑 2019年07月07日 24:00:00", "time"},
		{"minute out of range", "2019年小暑 2019年07月07日 17:60:00", "time"},
		{"name year mismatch", "2018年小暑 2019年07月07日 17:20:25", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseRecord(%q) error = %v, want *ParseError", tt.line, err)
			}
			if perr.Field != tt.field {
				t.Errorf("Field = %q, want %q", perr.Field, tt.field)
			}
		})
	}
}

func TestRecordString(t *testing.T) {
	line := "2019年小暑 2019年07月07日 17:20:25"
	rec, err := ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if got := rec.String(); got != line {
		t.Errorf("String() = %q, want %q", got, line)
	}
}

func TestTerms(t *testing.T) {
	for term := MinorCold; term <= WinterSolstice; term++ {
		parsed, err := ParseTerm(term.String())
		if err != nil || parsed != term {
			t.Errorf("ParseTerm(%q) = %v, %v", term, parsed, err)
		}
		if term.Sectional() != (term.Governing() == term) {
			t.Errorf("%v: Sectional() disagrees with Governing()", term)
		}
	}

	if got := StartOfSpring.Longitude(); got != 315 {
		t.Errorf("立春 longitude = %v, want 315", got)
	}
	if got := SpringEquinox.Longitude(); got != 0 {
		t.Errorf("春分 longitude = %v, want 0", got)
	}
	if got := WinterSolstice.Next(); got != MinorCold {
		t.Errorf("冬至.Next() = %v, want 小寒", got)
	}
}

func TestMonthBranch(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{MinorCold, "丑"},
		{MajorCold, "丑"},
		{StartOfSpring, "寅"},
		{RainWater, "寅"},
		{SummerSolstice, "午"},
		{MinorHeat, "未"},
		{MajorSnow, "子"},
		{WinterSolstice, "子"},
	}

	for _, tt := range tests {
		if got := tt.term.MonthBranch().String(); got != tt.want {
			t.Errorf("%v.MonthBranch() = %s, want %s", tt.term, got, tt.want)
		}
	}
}
