package analysis

import (
	"sort"
)

const (
	// DefaultTopN is the result count used when callers pass a
	// non-positive n.
	DefaultTopN = 3
	// DefaultMinGames is the minimum sample size for the win-rate
	// rankings when callers pass a non-positive threshold.
	DefaultMinGames = 3
)

// RankedDay is a DayStat copy annotated with the ranking keys. The input
// DayStat is never mutated; every derived field is recomputed on each call.
type RankedDay struct {
	DayStat
	NetWin     int     `json:"net_win"`
	WinRateNum float64 `json:"win_rate_num"`
}

func derive(d DayStat) RankedDay {
	d.LoseCount = d.Count - d.WinCount
	d.WinRate = FormatWinRate(d.WinCount, d.Count)
	r := RankedDay{
		DayStat: d,
		NetWin:  d.WinCount - (d.Count - d.WinCount),
	}
	if d.Count > 0 {
		r.WinRateNum = float64(d.WinCount) / float64(d.Count)
	}
	return r
}

func rank(days []DayStat, n int, keep func(DayStat) bool, less func(a, b RankedDay) bool) []RankedDay {
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := make([]RankedDay, 0, len(days))
	for _, d := range days {
		if keep(d) {
			ranked = append(ranked, derive(d))
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// BestDays returns the n days with the highest net win (wins minus losses).
func BestDays(days []DayStat, n int) []RankedDay {
	return rank(days, n,
		func(d DayStat) bool { return d.Count > 0 },
		func(a, b RankedDay) bool { return a.NetWin > b.NetWin })
}

// WorstDays returns the n days with the lowest net win.
func WorstDays(days []DayStat, n int) []RankedDay {
	return rank(days, n,
		func(d DayStat) bool { return d.Count > 0 },
		func(a, b RankedDay) bool { return a.NetWin < b.NetWin })
}

// MostPlayedDays returns the n days with the most games played.
func MostPlayedDays(days []DayStat, n int) []RankedDay {
	return rank(days, n,
		func(d DayStat) bool { return d.Count > 0 },
		func(a, b RankedDay) bool { return a.Count > b.Count })
}

// MostWinsDays returns the n days with the most wins.
func MostWinsDays(days []DayStat, n int) []RankedDay {
	return rank(days, n,
		func(d DayStat) bool { return d.WinCount > 0 },
		func(a, b RankedDay) bool { return a.WinCount > b.WinCount })
}

// HighestWinRateDays returns the n days with the highest win rate among
// days with at least minGames games. Ties break on higher game count.
func HighestWinRateDays(days []DayStat, n, minGames int) []RankedDay {
	if minGames <= 0 {
		minGames = DefaultMinGames
	}
	return rank(days, n,
		func(d DayStat) bool { return d.Count >= minGames },
		func(a, b RankedDay) bool {
			if a.WinRateNum != b.WinRateNum {
				return a.WinRateNum > b.WinRateNum
			}
			return a.Count > b.Count
		})
}

// LowestWinRateDays returns the n days with the lowest win rate among
// days with at least minGames games. Ties break on higher game count.
func LowestWinRateDays(days []DayStat, n, minGames int) []RankedDay {
	if minGames <= 0 {
		minGames = DefaultMinGames
	}
	return rank(days, n,
		func(d DayStat) bool { return d.Count >= minGames },
		func(a, b RankedDay) bool {
			if a.WinRateNum != b.WinRateNum {
				return a.WinRateNum < b.WinRateNum
			}
			return a.Count > b.Count
		})
}
