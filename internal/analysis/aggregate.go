package analysis

import (
	"fmt"
	"strconv"

	"dota-analysis/internal/domain"
)

const secondsPerDay = 86400

// DayStat is the aggregate for one calendar day. The day is identified by
// the Unix timestamp of its UTC start; Date carries the same value in
// string form for display. WinRate is always derived from WinCount/Count.
type DayStat struct {
	Date       string `json:"date"`
	Timestamp  int64  `json:"timestamp"`
	Count      int    `json:"count"`
	WinCount   int    `json:"win_count"`
	LoseCount  int    `json:"lose_count"`
	WinRate    string `json:"win_rate"`
	CountColor string `json:"count_color"`
	WinColor   string `json:"win_color"`
}

// Aggregate buckets matches by UTC calendar day and computes per-day
// win/loss statistics. The side a match was played on is slot 0-127 for
// radiant, 128-255 for dire; the match is a win when the played side
// matches the radiant_win outcome. Output order follows bucket insertion
// order; callers that need chronological output sort by Timestamp.
func Aggregate(matches []domain.RawMatch) []DayStat {
	out := []DayStat{}
	if len(matches) == 0 {
		return out
	}

	buckets := make(map[int64]*DayStat, len(matches))
	order := make([]int64, 0, len(matches))

	for _, m := range matches {
		day := m.StartTime / secondsPerDay * secondsPerDay
		stat, ok := buckets[day]
		if !ok {
			stat = &DayStat{
				Date:      strconv.FormatInt(day, 10),
				Timestamp: day,
			}
			buckets[day] = stat
			order = append(order, day)
		}

		stat.Count++
		radiant := m.PlayerSlot < 128
		if radiant == m.RadiantWin {
			stat.WinCount++
		}
	}

	for _, day := range order {
		stat := buckets[day]
		stat.LoseCount = stat.Count - stat.WinCount
		stat.WinRate = FormatWinRate(stat.WinCount, stat.Count)
		stat.CountColor = CountColor(stat.Count)
		stat.WinColor = WinRateColor(WinRatePercent(stat.WinCount, stat.Count))
		out = append(out, *stat)
	}

	return out
}

// WinRatePercent returns the win rate as a percentage, 0 when no games
// were played.
func WinRatePercent(winCount, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(winCount) / float64(count) * 100
}

// FormatWinRate renders the win rate with one decimal, "0.0%" when no
// games were played.
func FormatWinRate(winCount, count int) string {
	return fmt.Sprintf("%.1f%%", WinRatePercent(winCount, count))
}
