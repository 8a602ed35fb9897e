package calendar

import (
	"github.com/carlosjhr64/jd"

	"github.com/zapponejosh/lunar-api/internal/almanac"
	"github.com/zapponejosh/lunar-api/internal/ganzhi"
)

// EpochYear is a 甲子 year, the origin of the year pillar cycle.
const EpochYear = 1984

// dayPillarOffset aligns Julian day numbers with the day cycle:
// JDN 2451545 (2000-01-01) is 戊午.
const dayPillarOffset = 49

// FourPillars is the sexagenary encoding of one hour.
type FourPillars struct {
	Year  ganzhi.Pillar `json:"year" yaml:"year"`
	Month ganzhi.Pillar `json:"month" yaml:"month"`
	Day   ganzhi.Pillar `json:"day" yaml:"day"`
	Hour  ganzhi.Pillar `json:"hour" yaml:"hour"`
}

// YearPillar returns the pillar of sexagenary year y.
func YearPillar(y int) ganzhi.Pillar {
	return ganzhi.PillarAt(y - EpochYear)
}

// MonthPillar returns the pillar of the month with the given branch in a
// year whose stem is yearStem. The 寅 month's stem follows the five tigers
// rule and later months advance with the branch.
func MonthPillar(yearStem ganzhi.Stem, branch ganzhi.Branch) ganzhi.Pillar {
	first := (int(yearStem)%5)*2 + 2
	offset := (int(branch) - int(ganzhi.BranchYin) + 12) % 12
	return ganzhi.Pillar{
		Stem:   ganzhi.Stem((first + offset) % 10),
		Branch: branch,
	}
}

// DayPillar returns the pillar of a Gregorian date.
func DayPillar(year, month, day int) ganzhi.Pillar {
	return ganzhi.PillarAt(jd.YMD2J(year, month, day) + dayPillarOffset)
}

// HourPillar returns the pillar of hour (0-24) on a day whose stem is
// dayStem. The 子 hour's stem follows the five rats rule.
func HourPillar(dayStem ganzhi.Stem, hour int) ganzhi.Pillar {
	branch := ganzhi.BranchForHour(hour)
	first := (int(dayStem) % 5) * 2
	return ganzhi.Pillar{
		Stem:   ganzhi.Stem((first + int(branch)) % 10),
		Branch: branch,
	}
}

// PillarYear returns the sexagenary year a date belongs to. Months are
// opened by sectional terms, so the 子 and 丑 months that straddle
// January belong to the previous year until 立春.
func PillarYear(year, month int, monthBranch ganzhi.Branch) int {
	if month <= 2 && (monthBranch == ganzhi.BranchZi || monthBranch == ganzhi.BranchChou) {
		return year - 1
	}
	return year
}

// ComputePillars derives the four pillars of d. The month comes from the
// sectional term governing the window's previous term.
func ComputePillars(d Date, window almanac.Window) FourPillars {
	branch := window.Previous.Term.MonthBranch()
	year := YearPillar(PillarYear(d.Year, d.Month, branch))
	day := DayPillar(d.Year, d.Month, d.Day)

	return FourPillars{
		Year:  year,
		Month: MonthPillar(year.Stem, branch),
		Day:   day,
		Hour:  HourPillar(day.Stem, d.Hour),
	}
}
