package almanac

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrWindowMismatch is returned when a record pair does not bracket the
// target date.
var ErrWindowMismatch = errors.New("solar term records do not bracket the date")

// Distance is how far one bracketing solar term lies from the target date.
type Distance struct {
	SolarTerm string    `json:"solarTerm" yaml:"solar_term"`
	Term      Term      `json:"-" yaml:"-"`
	At        time.Time `json:"at" yaml:"at"`

	// DiffDistanceDay is |floor(hours/24)|, so for the previous term it
	// counts the partial day as a whole one.
	DiffDistanceDay int `json:"diffDistanceDay" yaml:"diff_distance_day"`

	// DiffDistanceDetail is the unrounded |hours/24|.
	DiffDistanceDetail float64 `json:"diffDistanceDetail" yaml:"diff_distance_detail"`
}

// Window holds the solar terms immediately before and after a date.
//
// Previous.DiffDistanceDetail + Next.DiffDistanceDetail equals the interval
// between the two terms up to floating point error; the day counts do not
// add up because of the floor.
type Window struct {
	Previous Distance `json:"previous" yaml:"previous"`
	Next     Distance `json:"next" yaml:"next"`
}

// Measure parses the previous/next record pair and measures both against
// the date at 00:00. The previous term must not be after that instant and
// the next term must be after it.
func Measure(date time.Time, previous, next string) (Window, error) {
	prev, err := ParseRecord(previous)
	if err != nil {
		return Window{}, err
	}
	nxt, err := ParseRecord(next)
	if err != nil {
		return Window{}, err
	}
	return MeasureRecords(date, prev, nxt)
}

// MeasureRecords is Measure for records that are already parsed.
func MeasureRecords(date time.Time, previous, next Record) (Window, error) {
	start := midnight(date)
	if previous.At.After(start) || !next.At.After(start) {
		return Window{}, fmt.Errorf("%w: %s, %s around %s",
			ErrWindowMismatch, previous, next, start.Format(time.DateOnly))
	}

	return Window{
		Previous: distance(start, previous),
		Next:     distance(start, next),
	}, nil
}

func distance(start time.Time, r Record) Distance {
	days := r.At.Sub(start).Hours() / 24
	return Distance{
		SolarTerm:          r.Term.String(),
		Term:               r.Term,
		At:                 r.At,
		DiffDistanceDay:    int(math.Abs(math.Floor(days))),
		DiffDistanceDetail: math.Abs(days),
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
