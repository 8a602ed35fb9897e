package almanac

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Record is one almanac entry: a solar term and the wall-clock instant
// (China Standard Time, stored in time.UTC) at which it begins.
type Record struct {
	Term Term
	At   time.Time
}

// String formats the record in almanac text form, e.g.
//
//	2019年小暑 2019年07月07日 17:20:25
func (r Record) String() string {
	return fmt.Sprintf("%04d年%s %04d年%02d月%02d日 %02d:%02d:%02d",
		r.At.Year(), r.Term,
		r.At.Year(), int(r.At.Month()), r.At.Day(),
		r.At.Hour(), r.At.Minute(), r.At.Second())
}

// ParseError reports a malformed almanac record.
type ParseError struct {
	Record string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse almanac record %q: %s: %s", e.Record, e.Field, e.Reason)
}

var (
	datePattern = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日$`)
	timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
)

// termOffset is the rune offset of the term name inside the name field,
// which starts with a four-digit year and 年.
const termOffset = 5

// ParseRecord parses a record of the form
//
//	<YYYY>年<term> <YYYY>年<MM>月<DD>日 <hh>:<mm>:<ss>
//
// Full-width digits, colons and spaces are accepted.
func ParseRecord(line string) (Record, error) {
	folded := width.Fold.String(strings.TrimSpace(line))
	fields := strings.Fields(folded)
	if len(fields) != 3 {
		return Record{}, &ParseError{Record: line, Field: "record", Reason: fmt.Sprintf("want 3 fields, got %d", len(fields))}
	}

	nameYear, term, err := parseTermField(fields[0])
	if err != nil {
		return Record{}, &ParseError{Record: line, Field: "name", Reason: err.Error()}
	}

	m := datePattern.FindStringSubmatch(fields[1])
	if m == nil {
		return Record{}, &ParseError{Record: line, Field: "date", Reason: "want YYYY年MM月DD日"}
	}
	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])

	m = timePattern.FindStringSubmatch(fields[2])
	if m == nil {
		return Record{}, &ParseError{Record: line, Field: "time", Reason: "want hh:mm:ss"}
	}
	hour, minute, second := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if hour > 23 || minute > 59 || second > 59 {
		return Record{}, &ParseError{Record: line, Field: "time", Reason: "clock value out of range"}
	}

	at := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if at.Year() != year || int(at.Month()) != month || at.Day() != day {
		return Record{}, &ParseError{Record: line, Field: "date", Reason: "no such calendar date"}
	}
	if nameYear != year {
		return Record{}, &ParseError{Record: line, Field: "name", Reason: fmt.Sprintf("year %d does not match date year %d", nameYear, year)}
	}

	return Record{Term: term, At: at}, nil
}

func parseTermField(field string) (int, Term, error) {
	if utf8.RuneCountInString(field) != termOffset+2 {
		return 0, 0, fmt.Errorf("want YYYY年 followed by a two-character term, got %q", field)
	}
	runes := []rune(field)
	for _, r := range runes[:4] {
		if r < '0' || r > '9' {
			return 0, 0, fmt.Errorf("year prefix %q is not numeric", string(runes[:4]))
		}
	}
	if runes[4] != '年' {
		return 0, 0, fmt.Errorf("missing 年 after year in %q", field)
	}
	term, err := ParseTerm(string(runes[termOffset:]))
	if err != nil {
		return 0, 0, err
	}
	return atoi(string(runes[:4])), term, nil
}

// atoi is only called on regexp-matched digit runs.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
