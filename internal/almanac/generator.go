package almanac

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/carlosjhr64/jd"
)

const tropicalYear = 365.2422

// chinaStandardTime is the zone almanac wall-clock times are written in.
var chinaStandardTime = time.FixedZone("CST", 8*60*60)

// Generator computes solar term instants from the Sun's apparent
// longitude and serves them as almanac records. Results agree with
// published almanacs to within a few minutes, which is enough to place a
// term on the right day except when it falls within minutes of midnight.
//
// A Generator is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	years map[int][]Record
}

// NewGenerator returns a generator with an empty year cache.
func NewGenerator() *Generator {
	return &Generator{years: make(map[int][]Record)}
}

// Year returns the 24 solar terms of Gregorian year y, 小寒 through 冬至.
func (g *Generator) Year(y int) []Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	if records, ok := g.years[y]; ok {
		return records
	}

	records := make([]Record, TermCount)
	for t := MinorCold; t <= WinterSolstice; t++ {
		records[t] = Record{Term: t, At: wallClock(termInstant(y, t))}
	}
	g.years[y] = records
	return records
}

// Range returns every term from the first of year from to the last of year to.
func (g *Generator) Range(from, to int) []Record {
	var records []Record
	for y := from; y <= to; y++ {
		records = append(records, g.Year(y)...)
	}
	return records
}

// Window implements Source.
func (g *Generator) Window(_ context.Context, date time.Time) (string, string, error) {
	y := date.Year()

	// 小寒 is always the first term of a Gregorian year, so the neighbours of
	// any date lie between last year's 大雪 and next year's 大寒.
	records := make([]Record, 0, TermCount+4)
	records = append(records, g.Year(y-1)[MajorSnow:]...)
	records = append(records, g.Year(y)...)
	records = append(records, g.Year(y+1)[:StartOfSpring]...)

	previous, next, err := bracket(records, date)
	if err != nil {
		return "", "", err
	}
	return previous.String(), next.String(), nil
}

// termInstant solves for the UTC instant the Sun reaches the term's
// longitude in year y.
func termInstant(y int, t Term) time.Time {
	target := t.Longitude()
	jde := float64(jd.YMD2J(y, 1, 6)) + float64(t)*tropicalYear/TermCount

	for i := 0; i < 50; i++ {
		diff := normalize180(target - apparentLongitude(jde))
		jde += diff * tropicalYear / 360
		if math.Abs(diff) < 1e-7 {
			break
		}
	}

	return fromJulian(jde - deltaT(float64(y))/86400)
}

// apparentLongitude returns the Sun's apparent geocentric longitude in
// degrees for a Julian Ephemeris Day, using the low-precision solar
// coordinates (accurate to about 0.01°).
func apparentLongitude(jde float64) float64 {
	T := (jde - 2451545.0) / 36525
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	M := radians(357.52911 + 35999.05029*T - 0.0001537*T*T)
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)
	omega := radians(125.04 - 1934.136*T)
	return normalize360(L0 + C - 0.00569 - 0.00478*math.Sin(omega))
}

// deltaT approximates TT - UT in seconds (Espenak & Meeus polynomials).
func deltaT(y float64) float64 {
	switch {
	case y < 1900:
		t := y - 1860
		return 7.62 + 0.5737*t - 0.251754*t*t + 0.01680668*t*t*t - 0.0004473624*t*t*t*t + t*t*t*t*t/233174
	case y < 1920:
		t := y - 1900
		return -2.79 + 1.494119*t - 0.0598939*t*t + 0.0061966*t*t*t - 0.000197*t*t*t*t
	case y < 1941:
		t := y - 1920
		return 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case y < 1961:
		t := y - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case y < 1986:
		t := y - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case y < 2005:
		t := y - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t + 0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case y < 2050:
		t := y - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	case y < 2150:
		u := (y - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-y)
	}
	u := (y - 1820) / 100
	return -20 + 32*u*u
}

// fromJulian converts a Julian Day (UT) to a time rounded to the second.
func fromJulian(jdUT float64) time.Time {
	seconds := (jdUT - 2440587.5) * 86400
	return time.Unix(int64(math.Round(seconds)), 0).UTC()
}

// wallClock re-expresses an instant as China Standard Time wall-clock
// fields held in time.UTC, the representation every record uses.
func wallClock(instant time.Time) time.Time {
	c := instant.In(chinaStandardTime)
	return time.Date(c.Year(), c.Month(), c.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func normalize180(deg float64) float64 {
	deg = normalize360(deg + 180)
	return deg - 180
}
