package analysis

import (
	"math"
)

// SummaryStats is the whole-range overview shown above the calendar.
type SummaryStats struct {
	TotalGames         int     `json:"total_games"`
	TotalHours         int     `json:"total_hours"`
	AverageGamesPerDay float64 `json:"average_games_per_day"`
	MaxGamesInDay      int     `json:"max_games_in_day"`
	ActiveDays         int     `json:"active_days"`
}

// Summary totals a set of day stats. Hours assume a 30 minute average game.
func Summary(days []DayStat) SummaryStats {
	if len(days) == 0 {
		return SummaryStats{}
	}

	var s SummaryStats
	s.ActiveDays = len(days)
	for _, d := range days {
		s.TotalGames += d.Count
		if d.Count > s.MaxGamesInDay {
			s.MaxGamesInDay = d.Count
		}
	}
	s.TotalHours = int(math.Round(float64(s.TotalGames) * 0.5))
	s.AverageGamesPerDay = math.Round(float64(s.TotalGames)/float64(s.ActiveDays)*100) / 100

	return s
}
