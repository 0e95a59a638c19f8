package recommend

import (
	"errors"
	"testing"
	"time"

	"dota-analysis/internal/sexagenary"
)

// stubResolver maps day timestamps straight to day stems, bypassing any
// calendar arithmetic.
type stubResolver struct {
	stems map[int64]rune
}

func (s stubResolver) Pillars(d time.Time) (sexagenary.Pillars, error) {
	stem, ok := s.stems[d.Unix()]
	if !ok {
		return sexagenary.Pillars{}, errors.New("no mapping")
	}
	return sexagenary.Pillars{Day: sexagenary.Pillar{Stem: stem, Branch: '子'}}, nil
}

func TestCategoryWinRatesAccumulates(t *testing.T) {
	r := stubResolver{stems: map[int64]rune{
		100: '甲', // 木
		200: '甲', // 木
		300: '丙', // 火
	}}
	days := []DayOutcome{
		{Timestamp: 100, WinCount: 3, Count: 5},
		{Timestamp: 200, WinCount: 1, Count: 2},
		{Timestamp: 300, WinCount: 0, Count: 4},
	}

	stats := CategoryWinRates(days, r, 10, nil)
	if len(stats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats))
	}

	wood := stats[sexagenary.Wood]
	if wood == nil || wood.Wins != 4 || wood.Total != 7 {
		t.Fatalf("wood = %+v, want wins 4 total 7", wood)
	}
	if wood.WinRate != 4.0/7.0 {
		t.Errorf("wood win rate = %v", wood.WinRate)
	}
	if wood.Color != "#22c55e" {
		t.Errorf("wood color = %q", wood.Color)
	}

	fire := stats[sexagenary.Fire]
	if fire == nil || fire.Wins != 0 || fire.Total != 4 || fire.WinRate != 0 {
		t.Fatalf("fire = %+v, want wins 0 total 4", fire)
	}
}

func TestCategoryWinRatesGameLimitCap(t *testing.T) {
	r := stubResolver{stems: map[int64]rune{100: '甲'}}
	days := []DayOutcome{{Timestamp: 100, WinCount: 15, Count: 20}}

	stats := CategoryWinRates(days, r, 10, nil)
	wood := stats[sexagenary.Wood]
	if wood.Wins != 10 || wood.Total != 10 {
		t.Errorf("capped stats = wins %d total %d, want 10/10", wood.Wins, wood.Total)
	}
}

func TestCategoryWinRatesSkipsUnresolvableDays(t *testing.T) {
	r := stubResolver{stems: map[int64]rune{100: '甲'}}
	days := []DayOutcome{
		{Timestamp: 100, WinCount: 1, Count: 1},
		{Timestamp: 999, WinCount: 5, Count: 5}, // no mapping
	}

	stats := CategoryWinRates(days, r, 10, nil)
	if len(stats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(stats))
	}
	if stats[sexagenary.Wood].Total != 1 {
		t.Errorf("unresolvable day leaked into totals: %+v", stats[sexagenary.Wood])
	}
}

func TestCategoryWinRatesEmptyInput(t *testing.T) {
	stats := CategoryWinRates(nil, stubResolver{}, 10, nil)
	if len(stats) != 0 {
		t.Errorf("expected empty map, got %d entries", len(stats))
	}
}

func monthFixture(n int, elements ...sexagenary.Element) []LabeledDate {
	out := make([]LabeledDate, 0, n)
	base := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, LabeledDate{
			Date:    base.AddDate(0, 0, i),
			Element: elements[i%len(elements)],
		})
	}
	return out
}

func TestRecommendClassification(t *testing.T) {
	stats := map[sexagenary.Element]*CategoryStat{
		sexagenary.Wood:  {Element: sexagenary.Wood, WinRate: 0.7, Total: 6},
		sexagenary.Fire:  {Element: sexagenary.Fire, WinRate: 0.5, Total: 4},
		sexagenary.Water: {Element: sexagenary.Water, WinRate: 0.2, Total: 2},
	}
	dates := monthFixture(9, sexagenary.Wood, sexagenary.Fire, sexagenary.Water)

	good, bad := Recommend(stats, dates, 0.55, nil)

	if len(good) != 3 {
		t.Fatalf("expected 3 good dates, got %d", len(good))
	}
	for _, rec := range good {
		if rec.Element != sexagenary.Wood {
			t.Errorf("unexpected good element %q", rec.Element)
		}
		if rec.Confidence != ConfidenceHigh {
			t.Errorf("wood confidence = %q, want high", rec.Confidence)
		}
	}

	if len(bad) != 3 {
		t.Fatalf("expected 3 bad dates, got %d", len(bad))
	}
	for _, rec := range bad {
		if rec.Element != sexagenary.Water {
			t.Errorf("unexpected bad element %q", rec.Element)
		}
		if rec.Confidence != ConfidenceLow {
			t.Errorf("water confidence = %q, want low", rec.Confidence)
		}
	}
}

func TestRecommendGoodBadDisjoint(t *testing.T) {
	stats := map[sexagenary.Element]*CategoryStat{
		sexagenary.Wood:  {WinRate: 0.8, Total: 8},
		sexagenary.Water: {WinRate: 0.1, Total: 8},
	}
	dates := monthFixture(20, sexagenary.Wood, sexagenary.Water)

	good, bad := Recommend(stats, dates, 0.55, nil)

	seen := map[time.Time]bool{}
	for _, rec := range good {
		seen[rec.Date] = true
	}
	for _, rec := range bad {
		if seen[rec.Date] {
			t.Errorf("date %s in both lists", rec.Date.Format("2006-01-02"))
		}
	}
}

func TestRecommendCapsLists(t *testing.T) {
	stats := map[sexagenary.Element]*CategoryStat{
		sexagenary.Wood: {WinRate: 0.9, Total: 9},
	}
	dates := monthFixture(31, sexagenary.Wood)

	good, bad := Recommend(stats, dates, 0.55, nil)
	if len(good) != MaxRecommendations {
		t.Errorf("good list = %d entries, want %d", len(good), MaxRecommendations)
	}
	if len(bad) != 0 {
		t.Errorf("bad list = %d entries, want 0", len(bad))
	}
}

func TestRecommendSkipsUnknownCategories(t *testing.T) {
	dates := monthFixture(5, sexagenary.Metal)
	good, bad := Recommend(map[sexagenary.Element]*CategoryStat{}, dates, 0.55, nil)
	if len(good) != 0 || len(bad) != 0 {
		t.Errorf("dates without category stats classified: %d good %d bad", len(good), len(bad))
	}
}

func TestRecommendConfidenceTiers(t *testing.T) {
	tests := []struct {
		total int
		want  Confidence
	}{
		{5, ConfidenceHigh},
		{6, ConfidenceHigh},
		{4, ConfidenceMedium},
		{3, ConfidenceMedium},
		{2, ConfidenceLow},
		{1, ConfidenceLow},
	}
	for _, tt := range tests {
		if got := confidenceFor(tt.total); got != tt.want {
			t.Errorf("confidenceFor(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestRecommendFromBestWorstOverride(t *testing.T) {
	// The worst-days signal is applied second and overwrites a best-days
	// signal for the same label.
	best := map[sexagenary.Element]*CategoryStat{
		sexagenary.Wood: {WinRate: 0.7, Total: 6},
	}
	worst := map[sexagenary.Element]*CategoryStat{
		sexagenary.Wood: {WinRate: 0.3, Total: 4},
	}
	dates := monthFixture(1, sexagenary.Wood)

	good, bad := RecommendFromBestWorst(best, worst, dates, 0.6, 0.4, nil)
	if len(good) != 0 {
		t.Errorf("expected no good dates, got %d", len(good))
	}
	if len(bad) != 1 {
		t.Fatalf("expected 1 bad date, got %d", len(bad))
	}
	if bad[0].WinRate != 0.3 || bad[0].Source != "worst days" {
		t.Errorf("bad rec = score %v source %q, want 0.3 from worst days", bad[0].WinRate, bad[0].Source)
	}
	if bad[0].Confidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", bad[0].Confidence)
	}
}

func TestRecommendFromBestWorstNeutralExcluded(t *testing.T) {
	dates := monthFixture(10, sexagenary.Fire)
	good, bad := RecommendFromBestWorst(nil, nil, dates, 0.6, 0.4, nil)
	if len(good) != 0 || len(bad) != 0 {
		t.Errorf("neutral dates classified: %d good %d bad", len(good), len(bad))
	}
}

func TestRecommendFromBestWorstGoodSignal(t *testing.T) {
	best := map[sexagenary.Element]*CategoryStat{
		sexagenary.Fire: {WinRate: 0.75, Total: 8},
	}
	dates := monthFixture(2, sexagenary.Fire)

	good, bad := RecommendFromBestWorst(best, nil, dates, 0.6, 0.4, nil)
	if len(good) != 2 || len(bad) != 0 {
		t.Fatalf("got %d good %d bad, want 2/0", len(good), len(bad))
	}
	if good[0].WinRate != 0.75 || good[0].Source != "best days" {
		t.Errorf("good rec = score %v source %q", good[0].WinRate, good[0].Source)
	}
}

func TestTracerReceivesEvents(t *testing.T) {
	events := []string{}
	trace := Tracer(func(event string, fields map[string]any) {
		events = append(events, event)
	})

	r := stubResolver{stems: map[int64]rune{100: '甲'}}
	stats := CategoryWinRates([]DayOutcome{{Timestamp: 100, WinCount: 1, Count: 1}}, r, 10, trace)
	Recommend(stats, monthFixture(3, sexagenary.Wood), 0.55, trace)
	RecommendFromBestWorst(stats, nil, monthFixture(3, sexagenary.Wood), 0.6, 0.4, trace)

	want := []string{"category_win_rates", "recommend", "recommend_best_worst"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestMonthDatesLabelsWholeMonth(t *testing.T) {
	stems := map[int64]rune{}
	first := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == time.February; d = d.AddDate(0, 0, 1) {
		stems[d.Unix()] = '庚'
	}
	r := stubResolver{stems: stems}

	dates := MonthDates(r, 2024, time.February)
	if len(dates) != 29 { // 2024 is a leap year
		t.Fatalf("expected 29 labeled dates, got %d", len(dates))
	}
	for _, ld := range dates {
		if ld.Element != sexagenary.Metal {
			t.Errorf("date %s element = %q, want 金", ld.Date.Format("2006-01-02"), ld.Element)
		}
	}
}
