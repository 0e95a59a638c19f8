// Package recommend scores calendar dates as favorable or unfavorable for
// play, based on the historical win rate of each date's five-element label.
package recommend

import (
	"sort"
	"time"

	"dota-analysis/internal/analysis"
	"dota-analysis/internal/sexagenary"
)

const (
	// DefaultGameLimit caps how many games a single day may contribute
	// to a category, bounding the influence of high-volume days.
	DefaultGameLimit = 10
	// DefaultThreshold classifies a date as favorable at or above it and
	// unfavorable at or below its complement.
	DefaultThreshold = 0.55
	// DefaultGoodThreshold and DefaultBadThreshold drive the curated
	// best/worst-days variant.
	DefaultGoodThreshold = 0.6
	DefaultBadThreshold  = 0.4
	// MaxRecommendations caps each output list.
	MaxRecommendations = 10

	confidenceHighMin   = 5
	confidenceMediumMin = 3
)

// Tracer receives trace events from the recommendation pipeline. A nil
// Tracer is a no-op; the engine never writes to a console itself.
type Tracer func(event string, fields map[string]any)

func (t Tracer) emit(event string, fields map[string]any) {
	if t != nil {
		t(event, fields)
	}
}

// Confidence is the sample-size tier backing a recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func confidenceFor(total int) Confidence {
	switch {
	case total >= confidenceHighMin:
		return ConfidenceHigh
	case total >= confidenceMediumMin:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DayOutcome is one historical day's win/count pair at a timestamp.
type DayOutcome struct {
	Timestamp int64
	WinCount  int
	Count     int
}

// OutcomesOf projects aggregated day stats into outcome records.
func OutcomesOf(days []analysis.DayStat) []DayOutcome {
	out := make([]DayOutcome, 0, len(days))
	for _, d := range days {
		out = append(out, DayOutcome{Timestamp: d.Timestamp, WinCount: d.WinCount, Count: d.Count})
	}
	return out
}

// OutcomesOfRanked projects ranked days into outcome records.
func OutcomesOfRanked(days []analysis.RankedDay) []DayOutcome {
	out := make([]DayOutcome, 0, len(days))
	for _, d := range days {
		out = append(out, DayOutcome{Timestamp: d.Timestamp, WinCount: d.WinCount, Count: d.Count})
	}
	return out
}

// CategoryStat is the per-element aggregate across all days sharing a
// day-pillar element.
type CategoryStat struct {
	Element    sexagenary.Element `json:"element"`
	Color      string             `json:"color"`
	Wins       int                `json:"wins"`
	Total      int                `json:"total"`
	WinRate    float64            `json:"win_rate"`
	WinRatePct string             `json:"win_rate_pct"`
}

// CategoryWinRates accumulates day outcomes into per-element win rates.
// Each day contributes at most gameLimit wins and gameLimit games. Days
// whose label cannot be resolved are skipped, not fatal.
func CategoryWinRates(days []DayOutcome, r sexagenary.Resolver, gameLimit int, trace Tracer) map[sexagenary.Element]*CategoryStat {
	if gameLimit <= 0 {
		gameLimit = DefaultGameLimit
	}

	stats := make(map[sexagenary.Element]*CategoryStat)
	skipped := 0
	for _, d := range days {
		el, err := sexagenary.DayElement(r, time.Unix(d.Timestamp, 0).UTC())
		if err != nil {
			skipped++
			continue
		}

		st, ok := stats[el]
		if !ok {
			st = &CategoryStat{Element: el, Color: sexagenary.ElementColor(el)}
			stats[el] = st
		}
		st.Wins += min(d.WinCount, gameLimit)
		st.Total += min(d.Count, gameLimit)
	}

	for _, st := range stats {
		if st.Total > 0 {
			st.WinRate = float64(st.Wins) / float64(st.Total)
		}
		st.WinRatePct = analysis.FormatWinRate(st.Wins, st.Total)
	}

	trace.emit("category_win_rates", map[string]any{
		"days":       len(days),
		"skipped":    skipped,
		"categories": len(stats),
		"game_limit": gameLimit,
	})

	return stats
}

// LabeledDate is a calendar date pre-annotated with its day element.
type LabeledDate struct {
	Date    time.Time          `json:"date"`
	Element sexagenary.Element `json:"element"`
}

// MonthDates labels every calendar day of a month. Days whose label
// cannot be resolved are omitted.
func MonthDates(r sexagenary.Resolver, year int, month time.Month) []LabeledDate {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	out := []LabeledDate{}
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		el, err := sexagenary.DayElement(r, d)
		if err != nil {
			continue
		}
		out = append(out, LabeledDate{Date: d, Element: el})
	}
	return out
}

// Recommendation is one calendar date scored by its element's history.
type Recommendation struct {
	Date       time.Time          `json:"date"`
	Element    sexagenary.Element `json:"element"`
	Color      string             `json:"color"`
	WinRate    float64            `json:"win_rate"`
	Confidence Confidence         `json:"confidence"`
	Source     string             `json:"source,omitempty"`
}

// Recommend classifies each labeled date of a month against its element's
// historical win rate: favorable at or above threshold, unfavorable at or
// below 1-threshold, everything else neutral and excluded. Good dates are
// sorted by win rate descending, bad ascending; both lists are capped.
func Recommend(stats map[sexagenary.Element]*CategoryStat, monthDates []LabeledDate, threshold float64, trace Tracer) (good, bad []Recommendation) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	good = []Recommendation{}
	bad = []Recommendation{}
	for _, ld := range monthDates {
		st, ok := stats[ld.Element]
		if !ok || st.Total == 0 {
			continue
		}

		rec := Recommendation{
			Date:       ld.Date,
			Element:    ld.Element,
			Color:      sexagenary.ElementColor(ld.Element),
			WinRate:    st.WinRate,
			Confidence: confidenceFor(st.Total),
		}
		switch {
		case st.WinRate >= threshold:
			good = append(good, rec)
		case st.WinRate <= 1-threshold:
			bad = append(bad, rec)
		}
	}

	sort.SliceStable(good, func(i, j int) bool { return good[i].WinRate > good[j].WinRate })
	sort.SliceStable(bad, func(i, j int) bool { return bad[i].WinRate < bad[j].WinRate })
	good = capList(good)
	bad = capList(bad)

	trace.emit("recommend", map[string]any{
		"month_days": len(monthDates),
		"threshold":  threshold,
		"good":       len(good),
		"bad":        len(bad),
	})

	return good, bad
}

// RecommendFromBestWorst scores each date from two curated category
// mappings, one built from the best-days ranking and one from the worst.
// Each date starts neutral at 0.5; a best-days rate at or above
// goodThreshold raises the score, then a worst-days rate at or below
// badThreshold lowers it. The second signal is applied unconditionally
// and may overwrite the first for the same label.
func RecommendFromBestWorst(best, worst map[sexagenary.Element]*CategoryStat, monthDates []LabeledDate, goodThreshold, badThreshold float64, trace Tracer) (good, bad []Recommendation) {
	if goodThreshold <= 0 {
		goodThreshold = DefaultGoodThreshold
	}
	if badThreshold <= 0 {
		badThreshold = DefaultBadThreshold
	}

	good = []Recommendation{}
	bad = []Recommendation{}
	for _, ld := range monthDates {
		score := 0.5
		source := ""
		total := 0

		if bs, ok := best[ld.Element]; ok && bs.WinRate >= goodThreshold {
			score = bs.WinRate
			source = "best days"
			total = bs.Total
		}
		if ws, ok := worst[ld.Element]; ok && ws.WinRate <= badThreshold {
			score = ws.WinRate
			source = "worst days"
			total = ws.Total
		}

		rec := Recommendation{
			Date:       ld.Date,
			Element:    ld.Element,
			Color:      sexagenary.ElementColor(ld.Element),
			WinRate:    score,
			Confidence: confidenceFor(total),
			Source:     source,
		}
		switch {
		case score >= goodThreshold:
			good = append(good, rec)
		case score <= badThreshold:
			bad = append(bad, rec)
		}
	}

	sort.SliceStable(good, func(i, j int) bool { return good[i].WinRate > good[j].WinRate })
	sort.SliceStable(bad, func(i, j int) bool { return bad[i].WinRate < bad[j].WinRate })
	good = capList(good)
	bad = capList(bad)

	trace.emit("recommend_best_worst", map[string]any{
		"month_days":     len(monthDates),
		"good_threshold": goodThreshold,
		"bad_threshold":  badThreshold,
		"good":           len(good),
		"bad":            len(bad),
	})

	return good, bad
}

func capList(recs []Recommendation) []Recommendation {
	if len(recs) > MaxRecommendations {
		return recs[:MaxRecommendations]
	}
	return recs
}
