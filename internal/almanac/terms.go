// Package almanac parses solar-term almanac records and measures the
// distance from a date to the solar terms that bracket it.
package almanac

import (
	"fmt"

	"github.com/zapponejosh/lunar-api/internal/ganzhi"
)

// Term is one of the 24 solar terms, numbered from 小寒 (early January).
type Term int

const (
	MinorCold Term = iota
	MajorCold
	StartOfSpring
	RainWater
	AwakeningOfInsects
	SpringEquinox
	PureBrightness
	GrainRain
	StartOfSummer
	GrainBuds
	GrainInEar
	SummerSolstice
	MinorHeat
	MajorHeat
	StartOfAutumn
	EndOfHeat
	WhiteDew
	AutumnEquinox
	ColdDew
	FrostsDescent
	StartOfWinter
	MinorSnow
	MajorSnow
	WinterSolstice
)

// TermCount is the number of solar terms in a year.
const TermCount = 24

var termNames = [TermCount]string{
	"小寒", "大寒", "立春", "雨水", "驚蟄", "春分",
	"清明", "穀雨", "立夏", "小滿", "芒種", "夏至",
	"小暑", "大暑", "立秋", "處暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

func (t Term) String() string {
	if t < MinorCold || t > WinterSolstice {
		return fmt.Sprintf("Term(%d)", int(t))
	}
	return termNames[t]
}

// ParseTerm looks a term up by its two-character name.
func ParseTerm(name string) (Term, error) {
	for i, n := range termNames {
		if n == name {
			return Term(i), nil
		}
	}
	return 0, fmt.Errorf("unknown solar term %q", name)
}

// Longitude returns the apparent solar longitude, in degrees, at which the
// term begins. 小寒 is at 285°, each following term 15° further.
func (t Term) Longitude() float64 {
	return float64((285 + 15*int(t)) % 360)
}

// Sectional reports whether t is a sectional term (節), the kind that opens
// a sexagenary month. The others are principal terms (中氣).
func (t Term) Sectional() bool {
	return t%2 == 0
}

// Governing returns the sectional term governing the month t falls in:
// t itself, or the term just before it.
func (t Term) Governing() Term {
	return t - t%2
}

// MonthBranch returns the branch of the sexagenary month opened by the
// term's governing sectional term: 立春 opens 寅, 小寒 opens 丑.
func (t Term) MonthBranch() ganzhi.Branch {
	return ganzhi.Branch((int(t.Governing())/2 + 1) % 12)
}

// Next returns the following term, wrapping from 冬至 to 小寒.
func (t Term) Next() Term {
	return (t + 1) % TermCount
}
