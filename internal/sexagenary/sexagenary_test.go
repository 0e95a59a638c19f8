package sexagenary

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApproximateEpochDay(t *testing.T) {
	// The day-pillar arithmetic is anchored on 1900-01-31 being a 甲子 day.
	p, err := Approximate{}.Pillars(date(1900, time.January, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Day.String() != "甲子" {
		t.Errorf("day pillar = %q, want 甲子", p.Day)
	}
	if p.Year.String() != "庚子" {
		t.Errorf("year pillar = %q, want 庚子", p.Year)
	}
}

func TestApproximateYearPillar2024(t *testing.T) {
	p, err := Approximate{}.Pillars(date(2024, time.July, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Year.String() != "甲辰" {
		t.Errorf("year pillar = %q, want 甲辰", p.Year)
	}
}

func TestApproximateDeterministic(t *testing.T) {
	d := date(2024, time.July, 5)
	first, err := Approximate{}.Pillars(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Approximate{}.Pillars(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("pillars diverged for the same date: %v vs %v", first, second)
	}
}

func TestApproximateDayCycleLength(t *testing.T) {
	base := date(2024, time.January, 1)
	p1, _ := Approximate{}.Pillars(base)
	p2, _ := Approximate{}.Pillars(base.AddDate(0, 0, 60))
	if p1.Day != p2.Day {
		t.Errorf("day pillar should repeat after 60 days: %q vs %q", p1.Day, p2.Day)
	}
	p3, _ := Approximate{}.Pillars(base.AddDate(0, 0, 1))
	if p1.Day == p3.Day {
		t.Error("consecutive days share a day pillar")
	}
}

func TestPreciseDeterministic(t *testing.T) {
	d := date(2024, time.July, 5)
	first, err := Precise{}.Pillars(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Precise{}.Pillars(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("pillars diverged for the same date: %v vs %v", first, second)
	}
	if _, ok := first.Day.Element(); !ok {
		t.Errorf("day stem %q has no element", string(first.Day.Stem))
	}
}

func TestStemElementTable(t *testing.T) {
	wants := map[rune]Element{
		'甲': Wood, '乙': Wood,
		'丙': Fire, '丁': Fire,
		'戊': Earth, '己': Earth,
		'庚': Metal, '辛': Metal,
		'壬': Water, '癸': Water,
	}
	for stem, want := range wants {
		got, ok := ElementOfStem(stem)
		if !ok || got != want {
			t.Errorf("ElementOfStem(%q) = %q/%v, want %q", string(stem), got, ok, want)
		}
	}
	if _, ok := ElementOfStem('子'); ok {
		t.Error("branch character accepted as stem")
	}
}

func TestEveryBranchHasElement(t *testing.T) {
	for _, b := range branches {
		if _, ok := ElementOfBranch(b); !ok {
			t.Errorf("branch %q has no element", string(b))
		}
	}
}

func TestElementColors(t *testing.T) {
	wants := map[Element]string{
		Wood:  "#22c55e",
		Fire:  "#ef4444",
		Earth: "#eab308",
		Metal: "#94a3b8",
		Water: "#3b82f6",
	}
	for e, want := range wants {
		if got := ElementColor(e); got != want {
			t.Errorf("ElementColor(%q) = %q, want %q", e, got, want)
		}
	}
	if got := ElementColor("?"); got != "#64748b" {
		t.Errorf("unknown element color = %q", got)
	}
}

type failingResolver struct{}

func (failingResolver) Pillars(time.Time) (Pillars, error) {
	return Pillars{}, errors.New("conversion unavailable")
}

func TestFallbackSignalsDegradation(t *testing.T) {
	var fallbackDates []time.Time
	f := &Fallback{
		Precise:     failingResolver{},
		Approximate: Approximate{},
		OnFallback:  func(d time.Time, err error) { fallbackDates = append(fallbackDates, d) },
	}

	d := date(2024, time.July, 5)
	p, err := f.Pillars(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fallbackDates) != 1 || !fallbackDates[0].Equal(d) {
		t.Errorf("fallback not signaled: %v", fallbackDates)
	}

	want, _ := Approximate{}.Pillars(d)
	if p != want {
		t.Errorf("fallback pillars = %v, want approximate %v", p, want)
	}
}

func TestFallbackPrefersPrecise(t *testing.T) {
	f := NewFallback(func(time.Time, error) {
		t.Error("fallback signaled although precise resolver succeeded")
	})
	if _, err := f.Pillars(date(2024, time.July, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDayElement(t *testing.T) {
	e, err := DayElement(Approximate{}, date(1900, time.January, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != Wood { // 甲 day
		t.Errorf("element = %q, want 木", e)
	}
}
