// Package calendar converts Gregorian dates into the sexagenary four
// pillars, the lunar date and the surrounding solar terms, and relates the
// pillars to a reference stem through the Ten Gods.
package calendar

import (
	"github.com/zapponejosh/lunar-api/internal/almanac"
	"github.com/zapponejosh/lunar-api/internal/lunar"
)

// Core holds the pure computations for one date: its pillars, lunar date
// and solar-term window. A Core is an immutable value.
type Core struct {
	date    Date
	pillars FourPillars
	lunar   lunar.Date
	window  almanac.Window
}

// NewCore computes the pillars of d from its solar-term window.
func NewCore(d Date, lunarDate lunar.Date, window almanac.Window) Core {
	return Core{
		date:    d,
		pillars: ComputePillars(d, window),
		lunar:   lunarDate,
		window:  window,
	}
}

func (c Core) Date() Date {
	return c.date
}

func (c Core) Pillars() FourPillars {
	return c.pillars
}

func (c Core) Lunar() lunar.Date {
	return c.lunar
}

func (c Core) SolarTermDistance() almanac.Window {
	return c.window
}

// WithHour returns a copy of c at another hour of the same day. Only the
// hour pillar changes.
func (c Core) WithHour(hour int) Core {
	c.date.Hour = hour
	c.pillars.Hour = HourPillar(c.pillars.Day.Stem, hour)
	return c
}
