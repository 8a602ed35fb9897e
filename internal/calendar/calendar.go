package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/lunar-api/internal/almanac"
	"github.com/zapponejosh/lunar-api/internal/ganzhi"
	"github.com/zapponejosh/lunar-api/internal/lunar"
)

// Engine builds calendars from a lunar year table and an almanac source.
// It holds no per-request state and is safe for concurrent use as long as
// its source is.
type Engine struct {
	table      *lunar.Table
	source     almanac.Source
	normalizer Normalizer
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock consulted when a request carries no time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.normalizer.Now = now
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine. Supported Gregorian years are those the
// table covers.
func NewEngine(table *lunar.Table, source almanac.Source, opts ...Option) *Engine {
	e := &Engine{
		table:  table,
		source: source,
		normalizer: Normalizer{
			MinYear: table.MinYear(),
			MaxYear: table.MaxYear(),
			Now:     time.Now,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the lunar year table the engine converts with.
func (e *Engine) Table() *lunar.Table {
	return e.table
}

// Normalizer returns the validator the engine applies to input.
func (e *Engine) Normalizer() Normalizer {
	return e.normalizer
}

// New validates in and builds its calendar.
func (e *Engine) New(ctx context.Context, in Input) (*Calendar, error) {
	date, err := e.normalizer.Normalize(in)
	if err != nil {
		return nil, err
	}
	ref, hasRef, err := ParseReference(in.Reference)
	if err != nil {
		return nil, err
	}

	cal, err := e.build(ctx, date)
	if err != nil {
		return nil, err
	}
	if hasRef {
		cal.setReference(ref)
	}
	return cal, nil
}

// NewFromDate builds the calendar of an already numeric date.
func (e *Engine) NewFromDate(ctx context.Context, d Date) (*Calendar, error) {
	if err := e.normalizer.Check(d); err != nil {
		return nil, err
	}
	return e.build(ctx, d)
}

// LunarToSolar converts a lunar date and returns a new calendar for the
// resulting Gregorian date at the current hour.
func (e *Engine) LunarToSolar(ctx context.Context, year, month, day int, leap bool) (*Calendar, error) {
	solar, err := e.table.LunarToSolar(year, month, day, leap)
	if err != nil {
		return nil, err
	}
	// The last lunar months of the table's final year fall in the next
	// Gregorian year.
	if y := solar.Year(); y < e.normalizer.MinYear || y > e.normalizer.MaxYear {
		return nil, &lunar.UnsupportedYearError{Year: y, Min: e.normalizer.MinYear, Max: e.normalizer.MaxYear}
	}
	hour, err := e.normalizer.Hour("")
	if err != nil {
		return nil, err
	}
	return e.NewFromDate(ctx, DateOf(solar, hour))
}

// TenGod relates two stems directly.
func (e *Engine) TenGod(reference, target ganzhi.Stem) ganzhi.TenGod {
	return ganzhi.FindTenGod(reference, target)
}

func (e *Engine) build(ctx context.Context, d Date) (*Calendar, error) {
	lunarDate, err := e.table.SolarToLunar(d.Time())
	if err != nil {
		return nil, fmt.Errorf("lunar date of %s: %w", d, err)
	}

	window, err := almanac.Lookup(ctx, e.source, d.Time())
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "calendar built",
		slog.String("date", d.String()),
		slog.String("hour", d.HourString()),
		slog.String("previous_term", window.Previous.SolarTerm),
	)

	return &Calendar{
		core:       NewCore(d, lunarDate, window),
		normalizer: e.normalizer,
	}, nil
}

// TenGods relates the reference stem to each pillar's stem.
type TenGods struct {
	Year  ganzhi.TenGod `json:"year" yaml:"year"`
	Month ganzhi.TenGod `json:"month" yaml:"month"`
	Day   ganzhi.TenGod `json:"day" yaml:"day"`
	Hour  ganzhi.TenGod `json:"hour" yaml:"hour"`
}

// Calendar is the calendar of one date and hour, optionally related to a
// reference stem.
//
// Year, month and day pillars, the lunar date and the solar-term window are
// fixed at construction. SetTime and SetReference update the instance in
// place, so a Calendar must not be shared between goroutines; take a
// Snapshot to hand results around.
type Calendar struct {
	core       Core
	normalizer Normalizer

	reference ganzhi.Stem
	hasRef    bool
	tenGods   TenGods
}

func (c *Calendar) Core() Core {
	return c.core
}

func (c *Calendar) Pillars() FourPillars {
	return c.core.Pillars()
}

func (c *Calendar) Lunar() lunar.Date {
	return c.core.Lunar()
}

func (c *Calendar) SolarTermDistance() almanac.Window {
	return c.core.SolarTermDistance()
}

// Reference returns the reference stem and whether one is set.
func (c *Calendar) Reference() (ganzhi.Stem, bool) {
	return c.reference, c.hasRef
}

func (c *Calendar) YearTenGod() (ganzhi.TenGod, error) {
	return c.tenGod(func(g TenGods) ganzhi.TenGod { return g.Year })
}

func (c *Calendar) MonthTenGod() (ganzhi.TenGod, error) {
	return c.tenGod(func(g TenGods) ganzhi.TenGod { return g.Month })
}

func (c *Calendar) DayTenGod() (ganzhi.TenGod, error) {
	return c.tenGod(func(g TenGods) ganzhi.TenGod { return g.Day })
}

func (c *Calendar) HourTenGod() (ganzhi.TenGod, error) {
	return c.tenGod(func(g TenGods) ganzhi.TenGod { return g.Hour })
}

// TenGods returns all four relations, or ErrMissingReferenceStem.
func (c *Calendar) TenGods() (TenGods, error) {
	if !c.hasRef {
		return TenGods{}, ErrMissingReferenceStem
	}
	return c.tenGods, nil
}

func (c *Calendar) tenGod(pick func(TenGods) ganzhi.TenGod) (ganzhi.TenGod, error) {
	gods, err := c.TenGods()
	if err != nil {
		return 0, err
	}
	return pick(gods), nil
}

// SetReference sets the reference stem from a stem or stem+branch string
// and recomputes all four Ten Gods. An empty value clears the reference.
// On error the calendar is unchanged.
func (c *Calendar) SetReference(v string) error {
	stem, ok, err := ParseReference(v)
	if err != nil {
		return err
	}
	if !ok {
		c.ClearReference()
		return nil
	}
	c.setReference(stem)
	return nil
}

// ClearReference removes the reference stem; Ten-God queries then return
// ErrMissingReferenceStem.
func (c *Calendar) ClearReference() {
	c.reference = 0
	c.hasRef = false
	c.tenGods = TenGods{}
}

func (c *Calendar) setReference(stem ganzhi.Stem) {
	c.reference = stem
	c.hasRef = true

	p := c.core.Pillars()
	c.tenGods = TenGods{
		Year:  ganzhi.FindTenGod(stem, p.Year.Stem),
		Month: ganzhi.FindTenGod(stem, p.Month.Stem),
		Day:   ganzhi.FindTenGod(stem, p.Day.Stem),
		Hour:  ganzhi.FindTenGod(stem, p.Hour.Stem),
	}
}

// SetTime changes the hour. Only the hour pillar and the hour Ten God are
// recomputed. An empty value means the current hour. On error the
// calendar is unchanged.
func (c *Calendar) SetTime(v string) error {
	hour, err := c.normalizer.Hour(v)
	if err != nil {
		return err
	}
	c.core = c.core.WithHour(hour)
	if c.hasRef {
		c.tenGods.Hour = ganzhi.FindTenGod(c.reference, c.core.Pillars().Hour.Stem)
	}
	return nil
}
