package calendar

import (
	"github.com/zapponejosh/lunar-api/internal/almanac"
	"github.com/zapponejosh/lunar-api/internal/lunar"
)

// Snapshot is an immutable copy of everything a calendar computed.
// TenGods and Reference are omitted when no reference stem is set.
type Snapshot struct {
	Date       string         `json:"date" yaml:"date"`
	Time       string         `json:"time" yaml:"time"`
	Pillars    FourPillars    `json:"pillars" yaml:"pillars"`
	Lunar      lunar.Date     `json:"lunar" yaml:"lunar"`
	LunarText  string         `json:"lunarText" yaml:"lunar_text"`
	SolarTerms almanac.Window `json:"solarTerms" yaml:"solar_terms"`
	Reference  string         `json:"reference,omitempty" yaml:"reference,omitempty"`
	TenGods    *TenGods       `json:"tenGods,omitempty" yaml:"ten_gods,omitempty"`
}

// Snapshot assembles the calendar's current state. Later setter calls do
// not affect the returned value.
func (c *Calendar) Snapshot() Snapshot {
	core := c.core
	s := Snapshot{
		Date:       core.Date().String(),
		Time:       core.Date().HourString(),
		Pillars:    core.Pillars(),
		Lunar:      core.Lunar(),
		LunarText:  core.Lunar().String(),
		SolarTerms: core.SolarTermDistance(),
	}
	if c.hasRef {
		gods := c.tenGods
		s.Reference = c.reference.String()
		s.TenGods = &gods
	}
	return s
}
