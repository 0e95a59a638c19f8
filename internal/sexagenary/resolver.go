package sexagenary

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// Precise resolves pillars through the lunar-go conversion library and is
// the authoritative variant.
type Precise struct{}

func (Precise) Pillars(date time.Time) (p Pillars, err error) {
	// lunar-go panics on dates outside its supported range.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lunar conversion failed for %s: %v", date.Format("2006-01-02"), r)
		}
	}()

	solar := calendar.NewSolarFromYmd(date.Year(), int(date.Month()), date.Day())
	lunar := solar.GetLunar()

	year, err := parsePillar(lunar.GetYearInGanZhi())
	if err != nil {
		return Pillars{}, err
	}
	month, err := parsePillar(lunar.GetMonthInGanZhi())
	if err != nil {
		return Pillars{}, err
	}
	day, err := parsePillar(lunar.GetDayInGanZhi())
	if err != nil {
		return Pillars{}, err
	}

	return Pillars{Year: year, Month: month, Day: day}, nil
}

func parsePillar(ganzhi string) (Pillar, error) {
	runes := []rune(ganzhi)
	if len(runes) != 2 {
		return Pillar{}, fmt.Errorf("malformed ganzhi %q", ganzhi)
	}
	return Pillar{Stem: runes[0], Branch: runes[1]}, nil
}

// approxEpoch anchors the approximate day-pillar arithmetic. 1900-01-31
// was a 甲子 day.
var approxEpoch = time.Date(1900, time.January, 31, 0, 0, 0, 0, time.UTC)

// Approximate computes pillars from plain solar-date arithmetic. It
// diverges from the authoritative calendar near lunar month and year
// boundaries and exists only for offline operation.
type Approximate struct{}

func (Approximate) Pillars(date time.Time) (Pillars, error) {
	y, m, d := date.Year(), int(date.Month()), date.Day()

	dayStart := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	daysSinceEpoch := int(dayStart.Sub(approxEpoch) / (24 * time.Hour))

	return Pillars{
		Year:  pillarAt(y - 4),
		Month: pillarAt(y*12 + m - 1),
		Day:   pillarAt(daysSinceEpoch),
	}, nil
}

// Fallback prefers the precise resolver and degrades to the approximate
// one, signaling each degradation through OnFallback so the caller is
// never served approximate pillars silently.
type Fallback struct {
	Precise     Resolver
	Approximate Resolver
	OnFallback  func(date time.Time, err error)
}

// NewFallback builds the default precise-over-approximate chain.
func NewFallback(onFallback func(date time.Time, err error)) *Fallback {
	return &Fallback{
		Precise:     Precise{},
		Approximate: Approximate{},
		OnFallback:  onFallback,
	}
}

func (f *Fallback) Pillars(date time.Time) (Pillars, error) {
	p, err := f.Precise.Pillars(date)
	if err == nil {
		return p, nil
	}
	if f.OnFallback != nil {
		f.OnFallback(date, err)
	}
	return f.Approximate.Pillars(date)
}
